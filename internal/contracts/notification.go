package contracts

type NotificationRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type SingleNotificationRequest struct {
	Name  string `json:"name" binding:"required"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type NotificationResponse struct {
	Message    string `json:"message"`
	Recipients int    `json:"recipients"`
}
