package schema

import "time"

// OG is a top-level namespace collection mirrored from the factory contract.
type OG struct {
	OGName          string    `gorm:"column:og_name;primaryKey" json:"og_name"`
	ContractAddress string    `gorm:"column:contract_address;not null;index" json:"contract_address"`
	TotalSupply     uint64    `gorm:"column:total_supply;not null;default:0" json:"total_supply"`
	LastUpdated     time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (OG) TableName() string {
	return "situs_ogs"
}
