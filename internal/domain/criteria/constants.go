package criteria

const (
	CategoryBehavior   = "BEHAVIOR"
	CategoryExecution  = "EXECUTION"
	CategoryManagement = "MANAGEMENT"
	CategoryReview360  = "REVIEW_360"
	CategoryImported   = "IMPORTED"
)
