package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	DiscoveryHandler    *DiscoveryHandler
	ProjectHandler      *ProjectHandler
	DeliverableHandler  *DeliverableHandler
	PaymentHandler      *PaymentHandler
	MessageHandler      *MessageHandler
	NotificationHandler *NotificationHandler
	DashboardHandler    *DashboardHandler
	EmailHandler        *EmailHandler
}
