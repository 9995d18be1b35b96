package service

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedLimit is how many posts the feed shows.
const FeedLimit = 50

// --- Error Definitions ---
var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyPost    = errors.New("post content cannot be empty")
	ErrPostTooLong  = fmt.Errorf("post content exceeds %d characters", domain.MaxPostLength)
)

// PostAuthor is the public face of whoever wrote a post.
type PostAuthor struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	FireMaster bool               `json:"isFireMaster"`
}

// PostWorkout is the workout a post links to.
type PostWorkout struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Performance string             `json:"performance,omitempty"`
}

// PostView is a post as seen by one user.
type PostView struct {
	ID        primitive.ObjectID `json:"id"`
	Author    PostAuthor         `json:"author"`
	Content   string             `json:"content"`
	Likes     int                `json:"likes"`
	Liked     bool               `json:"liked"`
	Comments  int                `json:"comments"`
	CreatedAt time.Time          `json:"createdAt"`
	Workout   *PostWorkout       `json:"workout,omitempty"`
}

// NewPost is what a user submits to the feed.
type NewPost struct {
	Content     string
	WorkoutID   *primitive.ObjectID
	Performance string
}

// PostResult carries a post after a change and the notification to show, if any.
type PostResult struct {
	Post         PostView             `json:"post"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

// ShareResult is the link to a post.
type ShareResult struct {
	Link         string              `json:"link"`
	Notification domain.Notification `json:"notification"`
}

// FeedService runs the community feed.
type FeedService interface {
	List(ctx context.Context, viewer Viewer) ([]PostView, error)
	Publish(ctx context.Context, viewer Viewer, post NewPost) (*PostResult, error)
	// ToggleLike likes the post, or takes the like back when already given.
	ToggleLike(ctx context.Context, viewer Viewer, postID primitive.ObjectID) (*PostResult, error)
	Share(ctx context.Context, viewer Viewer, postID primitive.ObjectID) (*ShareResult, error)
}

type feedService struct {
	postRepo       repository.PostRepository
	userRepo       repository.UserRepository
	workoutRepo    repository.WorkoutRepository
	completionRepo repository.CompletionRepository
	catalog        CatalogService
	now            func() time.Time
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository, completionRepo repository.CompletionRepository, catalog CatalogService) FeedService {
	return &feedService{
		postRepo:       postRepo,
		userRepo:       userRepo,
		workoutRepo:    workoutRepo,
		completionRepo: completionRepo,
		catalog:        catalog,
		now:            time.Now,
	}
}

func (s *feedService) List(ctx context.Context, viewer Viewer) ([]PostView, error) {
	posts, err := s.postRepo.ListRecent(ctx, FeedLimit)
	if err != nil {
		return nil, err
	}
	authors := make(map[primitive.ObjectID]PostAuthor)
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		view, err := s.view(ctx, &posts[i], viewer.ID, authors)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *feedService) Publish(ctx context.Context, viewer Viewer, in NewPost) (*PostResult, error) {
	// 1. Validate content
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrEmptyPost
	}
	if utf8.RuneCountInString(content) > domain.MaxPostLength {
		return nil, ErrPostTooLong
	}

	post := &domain.Post{
		AuthorID:  viewer.ID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}

	// 2. A linked workout must be one the author can see
	if in.WorkoutID != nil {
		if _, err := s.catalog.GetWorkoutFor(ctx, viewer, *in.WorkoutID); err != nil {
			return nil, err
		}
		workoutID := *in.WorkoutID
		post.WorkoutID = &workoutID
		post.Performance = strings.TrimSpace(in.Performance)
	}

	// 3. Store
	if _, err := s.postRepo.Create(ctx, post); err != nil {
		log.Printf("ERROR: Failed to create post for user %s: %v", viewer.ID.Hex(), err)
		return nil, err
	}
	log.Printf("INFO: User %s published post %s", viewer.ID.Hex(), post.ID.Hex())

	view, err := s.view(ctx, post, viewer.ID, map[primitive.ObjectID]PostAuthor{})
	if err != nil {
		return nil, err
	}
	return &PostResult{
		Post: view,
		Notification: &domain.Notification{
			Kind:        domain.NotifyPostPublished,
			Title:       "Post published",
			Description: "Your post was shared with the community.",
			Severity:    domain.SeverityNormal,
		},
	}, nil
}

// ToggleLike only notifies when a like is given, not when it is taken back.
func (s *feedService) ToggleLike(ctx context.Context, viewer Viewer, postID primitive.ObjectID) (*PostResult, error) {
	liked, err := s.postRepo.ToggleLike(ctx, postID, viewer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	view, err := s.view(ctx, post, viewer.ID, map[primitive.ObjectID]PostAuthor{})
	if err != nil {
		return nil, err
	}

	res := &PostResult{Post: view}
	if liked {
		res.Notification = &domain.Notification{
			Kind:        domain.NotifyPostLiked,
			Title:       "Post liked",
			Description: "You liked this post.",
			Severity:    domain.SeverityNormal,
		}
	}
	return res, nil
}

func (s *feedService) Share(ctx context.Context, _ Viewer, postID primitive.ObjectID) (*ShareResult, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}
	return &ShareResult{
		Link: PostLink(postID),
		Notification: domain.Notification{
			Kind:        domain.NotifyPostShared,
			Title:       "Shared",
			Description: "Link ready to share.",
			Severity:    domain.SeverityNormal,
		},
	}, nil
}

// PostLink is the in-app path of a post.
func PostLink(postID primitive.ObjectID) string {
	return "/community/posts/" + postID.Hex()
}

func (s *feedService) getPost(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *feedService) view(ctx context.Context, p *domain.Post, viewerID primitive.ObjectID, authors map[primitive.ObjectID]PostAuthor) (PostView, error) {
	author, ok := authors[p.AuthorID]
	if !ok {
		var err error
		if author, err = s.author(ctx, p.AuthorID); err != nil {
			return PostView{}, err
		}
		authors[p.AuthorID] = author
	}

	view := PostView{
		ID:        p.ID,
		Author:    author,
		Content:   p.Content,
		Likes:     len(p.LikedBy),
		Liked:     p.LikedByUser(viewerID),
		Comments:  p.Comments,
		CreatedAt: p.CreatedAt,
	}
	if p.WorkoutID != nil {
		workout, err := s.workoutRepo.GetByID(ctx, *p.WorkoutID)
		switch {
		case err == nil:
			view.Workout = &PostWorkout{ID: workout.ID, Title: workout.Title, Performance: p.Performance}
		case errors.Is(err, repository.ErrNotFound):
			// The workout was removed; show the post without it.
		default:
			return PostView{}, err
		}
	}
	return view, nil
}

// author resolves the display name and the Fire Master badge of a post author.
func (s *feedService) author(ctx context.Context, id primitive.ObjectID) (PostAuthor, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: Post author %s no longer exists", id.Hex())
			return PostAuthor{ID: id, Name: "Former member"}, nil
		}
		return PostAuthor{}, err
	}

	author := PostAuthor{ID: id, Name: user.Name}
	if user.Role == domain.RoleStudent {
		completions, err := s.completionRepo.ListByStudentID(ctx, id)
		if err != nil {
			return PostAuthor{}, err
		}
		author.FireMaster = domain.BuildStats(completions, s.now()).FireMaster()
	}
	return author, nil
}
