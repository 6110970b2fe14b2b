package model

import "gorm.io/gorm"

// AllModels lists every persisted entity in migration order.
var AllModels = []interface{}{
	&User{},
	&CompanyRegistration{},
	&ServiceOfferingMasterList{},
	&Specialist{},
	&Media{},
	&ServiceOffering{},
	&Order{},
	&PlatformFee{},
	&ContactMessage{},
	&AuditLog{},
}

// AutoMigrate creates or updates the schema for all entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels...)
}
