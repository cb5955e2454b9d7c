package entitlement

// Reason is a stable code explaining a decision. The UI/API layer translates
// codes into messages; the engine never emits prose or raw lookup errors.
type Reason string

const (
	ReasonFeatureGranted        Reason = "feature_granted"
	ReasonFeatureDenied         Reason = "feature_denied"
	ReasonInvalidPath           Reason = "invalid_feature_path"
	ReasonOverride              Reason = "override"
	ReasonSubscriptionInactive  Reason = "subscription_inactive"
	ReasonSubscriptionNotFound  Reason = "subscription_not_found"
	ReasonUnknownPlanOrRole     Reason = "unknown_plan_or_role"
	ReasonEvaluationUnavailable Reason = "evaluation_unavailable"
)

// Decision is the outcome of a feature check. Reason is always set, so
// callers and tests can assert why, not just the boolean.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`

	// Rule and Justification identify the override that produced the
	// verdict when Reason is ReasonOverride.
	Rule          string `json:"rule,omitempty"`
	Justification string `json:"justification,omitempty"`

	// RequiredPlan names the lowest tier offering the feature when the
	// denial is plan-related, for upgrade messaging.
	RequiredPlan string `json:"required_plan,omitempty"`

	// Err carries the wrapped collaborator failure when Reason is
	// ReasonEvaluationUnavailable. It is not serialized.
	Err error `json:"-"`
}

func allow(reason Reason) Decision {
	return Decision{Allowed: true, Reason: reason}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
