package schema

import (
	"time"

	"gorm.io/datatypes"
)

// EnsuranceToken is a certificate token mirrored from an ensurance contract
// on one of the supported chains. CreatorRewardRecipientSplit stores the
// split recipient list as JSON since the recipient count varies per token.
type EnsuranceToken struct {
	Chain                       string         `gorm:"column:chain;primaryKey" json:"chain"`
	TokenID                     uint64         `gorm:"column:token_id;primaryKey;autoIncrement:false" json:"token_id"`
	Name                        string         `gorm:"column:name" json:"name"`
	Description                 string         `gorm:"column:description" json:"description,omitempty"`
	ImageIPFS                   string         `gorm:"column:image_ipfs" json:"image_ipfs"`
	AnimationURLIPFS            string         `gorm:"column:animation_url_ipfs" json:"animation_url_ipfs,omitempty"`
	CreatorRewardRecipient      string         `gorm:"column:creator_reward_recipient" json:"creator_reward_recipient"`
	CreatorRewardRecipientSplit datatypes.JSON `gorm:"column:creator_reward_recipient_split" json:"creator_reward_recipient_split,omitempty"`
	MimeType                    string         `gorm:"column:mime_type" json:"mime_type,omitempty"`
	UpdatedAt                   time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (EnsuranceToken) TableName() string {
	return "ensurance_tokens"
}
