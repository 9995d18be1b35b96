// Package memory holds in-process repositories backed by the demo fixtures.
// They stand in for MongoDB when data.source is "fixture" and in tests.
package memory

import (
	"alcyxob/training-coach/internal/domain"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of every fixture account.
const DemoPassword = "password123"

// Fixture ids are fixed so that seeded databases and terminal sessions agree.
var (
	TrainerID       = mustID("665f00000000000000000001")
	StudentJoaoID   = mustID("665f00000000000000000011")
	StudentMariaID  = mustID("665f00000000000000000012")
	StudentCarlosID = mustID("665f00000000000000000013")

	WorkoutUpperID = mustID("665f00000000000000000101")
	WorkoutLowerID = mustID("665f00000000000000000102")
	WorkoutBackID  = mustID("665f00000000000000000103")

	ChallengeFireID   = mustID("665f00000000000000000201")
	ChallengeCardioID = mustID("665f00000000000000000202")

	PostMariaID  = mustID("665f00000000000000000301")
	PostCarlosID = mustID("665f00000000000000000302")
)

func mustID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return id
}

// Dataset is a full set of demo records.
type Dataset struct {
	Users      []domain.User
	Workouts   []domain.Workout
	Challenges []domain.Challenge
	Posts      []domain.Post
}

// Fixtures builds the demo dataset. Challenge windows are placed around now.
func Fixtures(now time.Time) Dataset {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	created := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)
	trainer := TrainerID

	users := []domain.User{
		{ID: TrainerID, Name: "João Treinador", Email: "joao.treinador@email.com", Role: domain.RoleTrainer,
			StudentIDs: []primitive.ObjectID{StudentJoaoID, StudentMariaID, StudentCarlosID}},
		{ID: StudentJoaoID, Name: "João Silva", Email: "joao@example.com", Role: domain.RoleStudent, TrainerID: &trainer},
		{ID: StudentMariaID, Name: "Maria Oliveira", Email: "maria@example.com", Role: domain.RoleStudent, TrainerID: &trainer},
		{ID: StudentCarlosID, Name: "Carlos Santos", Email: "carlos@example.com", Role: domain.RoleStudent, TrainerID: &trainer},
	}
	for i := range users {
		users[i].PasswordHash = string(hash)
		users[i].CreatedAt = created
		users[i].UpdatedAt = created
	}

	workouts := []domain.Workout{
		{
			ID: WorkoutUpperID, TrainerID: TrainerID, StudentID: StudentJoaoID,
			Title:       "Workout A - Upper Body",
			Description: "Chest, shoulders and triceps for hypertrophy. Twice a week with at least 48h of rest between sessions.",
			Type:        "Hypertrophy",
			CreatedAt:   created,
			Exercises: []domain.Exercise{
				{ID: "1", Name: "Barbell bench press", Sets: "4", Reps: "8-12", Rest: "90 seconds", Points: 10,
					Instructions: "Keep elbows at 45°, shoulder blades retracted and feet on the floor.", MediaKey: "media/bench-press.mp4"},
				{ID: "2", Name: "Dumbbell shoulder press", Sets: "3", Reps: "10-12", Rest: "60 seconds", Points: 8,
					Instructions: "Brace the core and do not arch the lower back."},
				{ID: "3", Name: "Incline dumbbell fly", Sets: "3", Reps: "12-15", Rest: "60 seconds", Points: 7,
					Instructions: "Keep a slight bend in the elbows throughout the movement."},
				{ID: "4", Name: "Rope triceps pushdown", Sets: "4", Reps: "12-15", Rest: "60 seconds", Points: 6,
					Instructions: "Keep elbows close to the body and fully extend the arms."},
				{ID: "5", Name: "Lateral raise", Sets: "3", Reps: "12-15", Rest: "45 seconds", Points: 5,
					Instructions: "Raise the arms to shoulder height with a slight bend in the elbows."},
				{ID: "6", Name: "Overhead triceps extension", Sets: "3", Reps: "10-12", Rest: "60 seconds", Points: 9,
					Instructions: "Point the elbows up and keep them still during the exercise."},
			},
		},
		{
			ID: WorkoutLowerID, TrainerID: TrainerID, StudentID: StudentJoaoID,
			Title:       "Workout B - Lower Body",
			Description: "Quadriceps, hamstrings and calves.",
			Type:        "Strength",
			CreatedAt:   created,
			Exercises: []domain.Exercise{
				{ID: "1", Name: "Back squat", Sets: "5", Reps: "5", Rest: "120 seconds", Points: 12},
				{ID: "2", Name: "Romanian deadlift", Sets: "4", Reps: "6-8", Rest: "90 seconds", Points: 10},
				{ID: "3", Name: "Leg press", Sets: "3", Reps: "10-12", Rest: "90 seconds", Points: 8},
				{ID: "4", Name: "Lying leg curl", Sets: "3", Reps: "12-15", Rest: "60 seconds", Points: 6},
				{ID: "5", Name: "Standing calf raise", Sets: "4", Reps: "15-20", Rest: "45 seconds", Points: 4},
			},
		},
		{
			ID: WorkoutBackID, TrainerID: TrainerID, StudentID: StudentMariaID,
			Title:       "Workout C - Back and Biceps",
			Description: "Build back width and thickness.",
			Type:        "Hypertrophy",
			CreatedAt:   created.AddDate(0, 0, 1),
			Exercises: []domain.Exercise{
				{ID: "1", Name: "Pull-up", Sets: "4", Reps: "6-10", Rest: "90 seconds", Points: 10},
				{ID: "2", Name: "Barbell row", Sets: "4", Reps: "8-10", Rest: "90 seconds", Points: 9},
				{ID: "3", Name: "Lat pulldown", Sets: "3", Reps: "10-12", Rest: "60 seconds", Points: 7},
				{ID: "4", Name: "Seated cable row", Sets: "3", Reps: "10-12", Rest: "60 seconds", Points: 7},
				{ID: "5", Name: "Face pull", Sets: "3", Reps: "15", Rest: "45 seconds", Points: 5},
				{ID: "6", Name: "Barbell curl", Sets: "3", Reps: "8-12", Rest: "60 seconds", Points: 6},
				{ID: "7", Name: "Hammer curl", Sets: "3", Reps: "10-12", Rest: "60 seconds", Points: 5},
			},
		},
	}
	for i := range workouts {
		workouts[i].UpdatedAt = workouts[i].CreatedAt
	}

	day := 24 * time.Hour
	challenges := []domain.Challenge{
		{
			ID: ChallengeFireID, Title: "30 Days of Fire",
			Description:  "Train every day for 30 days in a row.",
			DaysRequired: 30, Reward: "Fire Master",
			StartDate: now.Add(-10 * day).UTC(), EndDate: now.Add(20 * day).UTC(),
			ParticipantIDs: []primitive.ObjectID{StudentMariaID},
		},
		{
			ID: ChallengeCardioID, Title: "Cardio Week",
			Description:  "Finish a cardio session on 7 different days.",
			DaysRequired: 7, Reward: "Cardio Champion",
			StartDate: now.Add(-2 * day).UTC(), EndDate: now.Add(12 * day).UTC(),
		},
	}

	backWorkout := WorkoutBackID
	posts := []domain.Post{
		{
			ID: PostMariaID, AuthorID: StudentMariaID,
			Content:     "Day 10 of 30 Days of Fire done! Back day felt heavy but I finished every set.",
			WorkoutID:   &backWorkout,
			Performance: "7/7 exercises, 49 points",
			LikedBy:     []primitive.ObjectID{StudentCarlosID, TrainerID},
			Comments:    2,
			CreatedAt:   now.Add(-3 * time.Hour).UTC(),
		},
		{
			ID: PostCarlosID, AuthorID: StudentCarlosID,
			Content:   "Any tips to keep the knees stable on the leg press?",
			Comments:  1,
			CreatedAt: now.Add(-26 * time.Hour).UTC(),
		},
	}

	return Dataset{Users: users, Workouts: workouts, Challenges: challenges, Posts: posts}
}
