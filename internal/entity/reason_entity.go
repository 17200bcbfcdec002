package entity

// CancellationReason is a reference-data row describing one cancellation
// reason category and the minimum contact evidence it requires.
type CancellationReason struct {
	Code          string
	Label         string
	MinPhoneCount int
	MinSMSCount   int
	Active        bool
}
