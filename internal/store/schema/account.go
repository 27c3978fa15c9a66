package schema

import "time"

// Account is a single minted domain token within an OG, together with its
// derived token-bound account address. The (og_name, token_id) pair is the
// natural key; tba_address may be empty until backfilled.
type Account struct {
	OGName          string    `gorm:"column:og_name;primaryKey" json:"og_name"`
	TokenID         uint64    `gorm:"column:token_id;primaryKey;autoIncrement:false" json:"token_id"`
	AccountName     string    `gorm:"column:account_name;not null" json:"account_name"`
	FullAccountName string    `gorm:"column:full_account_name;not null;index" json:"full_account_name"`
	TBAAddress      string    `gorm:"column:tba_address" json:"tba_address"`
	OwnerAddress    string    `gorm:"column:owner_address" json:"owner_address,omitempty"`
	Description     string    `gorm:"column:description" json:"description,omitempty"`
	ImageHash       string    `gorm:"column:image_hash" json:"-"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Account) TableName() string {
	return "situs_accounts"
}
