package core

// System stores system information.
type System struct {
	Genesis  int64
	Location string
	Version  string

	Risk   RiskConfig
	Margin MarginConfig
}
