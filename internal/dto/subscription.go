package dto

type SubscribeDto struct {
	TargetID string `json:"target_id" binding:"required,uuid"`
}

type AddSubscriberDto struct {
	SubscriberID string `json:"subscriber_id" binding:"required,uuid"`
}

type RabbitMQFollowDto struct {
	SubscriberID string `json:"subscriber_id"`
	TargetID     string `json:"target_id"`
}
