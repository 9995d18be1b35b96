package service

// Services bundles the use cases a front end (HTTP API or terminal client) calls into.
type Services struct {
	Auth      AuthService
	Catalog   CatalogService
	Training  TrainingService
	Progress  ProgressService
	Challenge ChallengeService
	Feed      FeedService
}
