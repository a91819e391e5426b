package services

// ServiceContainer holds instances of all the application services. It is the
// entry point for accessing service functionality, particularly in handlers.
type ServiceContainer struct {
	Auth  AuthSvcFacade
	Token TokenSvcFacade
	User  UserSvcFacade
	Video VideoSvcFacade
}
