package domain

// UserContact 用户在各渠道的投递地址
type UserContact struct {
	UserID         int64  `json:"userId"`
	DeviceToken    string `json:"deviceToken"`    // PUSH
	WhatsAppNumber string `json:"whatsappNumber"` // WHATSAPP
	Email          string `json:"email"`          // EMAIL
}
