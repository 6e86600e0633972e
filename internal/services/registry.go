package services

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	DiscoveryService    DiscoveryService
	ProjectService      ProjectService
	DeliverableService  DeliverableService
	PaymentService      PaymentService
	MessageService      MessageService
	NotificationService NotificationService
	DashboardService    DashboardService
	EmailService        EmailService
}
