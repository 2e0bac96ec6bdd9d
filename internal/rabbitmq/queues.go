package rabbitmq

const (
	USER_REGISTERED_QUEUE = "users.registered"
	FOLLOWS_QUEUE = "follows"
	NEW_POST_NOTIFICATIONS_QUEUE = "followers-new-post-notifications"
)
