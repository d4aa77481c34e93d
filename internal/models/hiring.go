package models

// HiringOffer is a direct company-to-worker employment offer. An accepted
// offer is chat-worthy under the "hiring" project type.
type HiringOffer struct {
	BaseModel
	CompanyID string       `gorm:"not null;index"`
	WorkerID  string       `gorm:"not null;index"`
	Status    HiringStatus `gorm:"type:varchar(20);default:'pending'"`
	Message   string
	Salary    *float64

	Company *User `gorm:"foreignKey:CompanyID"`
	Worker  *User `gorm:"foreignKey:WorkerID"`
}

func (o *HiringOffer) ChatWorthy() bool {
	return o.Status == HiringStatusAccepted
}
