package models

// SuggestedReconciliationRequest is a machine-proposed parameter bundle extracted
// from a plan's legs. Every field is optional: a missing field means "keep what
// the operator already has", so applying a suggestion is a partial merge.
type SuggestedReconciliationRequest struct {
	TradingMode   *string `json:"trading_mode,omitempty"`
	ConfirmLive   *bool   `json:"confirm_live,omitempty"`
	Limit         *int    `json:"limit,omitempty"`
	MaxRounds     *int    `json:"max_rounds,omitempty"`
	SleepMs       *int    `json:"sleep_ms,omitempty"`
	AutoCancel    *bool   `json:"auto_cancel,omitempty"`
	MaxAgeSeconds *int    `json:"max_age_seconds,omitempty"`
}

// ReconcileParams is the operator's working parameter set. It is what the
// default-parameter store persists and what a resolved suggestion merges into.
type ReconcileParams struct {
	TradingMode   string `json:"trading_mode"`
	ConfirmLive   bool   `json:"confirm_live"`
	Limit         int    `json:"limit"`
	MaxRounds     int    `json:"max_rounds"`
	SleepMs       int    `json:"sleep_ms"`
	AutoCancel    bool   `json:"auto_cancel"`
	MaxAgeSeconds int    `json:"max_age_seconds"`
}

// ApplyTo overrides only the fields present in the suggestion and returns the
// merged set. The receiver and input are left untouched.
func (s *SuggestedReconciliationRequest) ApplyTo(p ReconcileParams) ReconcileParams {
	if s == nil {
		return p
	}
	if s.TradingMode != nil {
		p.TradingMode = *s.TradingMode
	}
	if s.ConfirmLive != nil {
		p.ConfirmLive = *s.ConfirmLive
	}
	if s.Limit != nil {
		p.Limit = *s.Limit
	}
	if s.MaxRounds != nil {
		p.MaxRounds = *s.MaxRounds
	}
	if s.SleepMs != nil {
		p.SleepMs = *s.SleepMs
	}
	if s.AutoCancel != nil {
		p.AutoCancel = *s.AutoCancel
	}
	if s.MaxAgeSeconds != nil {
		p.MaxAgeSeconds = *s.MaxAgeSeconds
	}
	return p
}
