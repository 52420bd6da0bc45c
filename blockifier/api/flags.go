package api

// ExecutionFlags controls transaction execution behavior
type ExecutionFlags struct {
	OnlyQuery bool
	ChargeFee bool
	Validate  bool
}

// DefaultExecutionFlags returns execution flags with standard settings
func DefaultExecutionFlags() ExecutionFlags {
	return ExecutionFlags{
		OnlyQuery: false,
		ChargeFee: true,
		Validate:  true,
	}
}

// NewExecutionFlags returns the flags for a transaction. Query transactions are
// only estimated, so they are never charged.
func NewExecutionFlags(onlyQuery, enforceFee bool) ExecutionFlags {
	flags := DefaultExecutionFlags()
	flags.OnlyQuery = onlyQuery
	flags.ChargeFee = enforceFee && !onlyQuery
	return flags
}
