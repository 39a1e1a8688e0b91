package models

// All returns every persisted model in migration order
func All() []interface{} {
	return []interface{}{
		&Admin{},
		&Household{},
		&User{},
		&UserHousehold{},
		&FeeService{},
		&FeeHousehold{},
		&UtilityUsage{},
		&Vehicle{},
		&ContributionFund{},
		&ContributionCampaign{},
		&ContributionPayment{},
		&Contribution{},
		&ReportUser{},
	}
}
