package intake

// RuleID names one independently enable/disable-able check run by the
// business rules engine. The set is fixed at compile time; enablement is
// configuration.
type RuleID string

const (
	// Core validation rules, run in this order.
	RulePatientValidation      RuleID = "PatientValidation"
	RuleDoctorValidation       RuleID = "DoctorValidation"
	RuleServiceValidation      RuleID = "ServiceValidation"
	RuleDateValidation         RuleID = "DateValidation"
	RuleTimeConflictValidation RuleID = "TimeConflictValidation"

	// Security family.
	RulePermissionCheck RuleID = "PermissionCheck"
	RuleDataSecurity    RuleID = "DataSecurity"
	RuleInputSecurity   RuleID = "InputSecurity"

	// Format family.
	RuleFormatValidation   RuleID = "FormatValidation"
	RuleRangeValidation    RuleID = "RangeValidation"
	RuleDataTypeValidation RuleID = "DataTypeValidation"

	// Special-case family, conditioned on request flags.
	RuleEmergencyHandling RuleID = "EmergencyHandling"
	RuleOnlineHandling    RuleID = "OnlineHandling"
	RuleSpecialHandling   RuleID = "SpecialHandling"

	// Reserved extension points; always pass.
	RuleLoadBalancing        RuleID = "LoadBalancing"
	RuleResourceOptimization RuleID = "ResourceOptimization"
	RuleExternalIntegration  RuleID = "ExternalIntegration"
	RuleDataSync             RuleID = "DataSync"
)

// Descriptor is one registry entry.
type Descriptor struct {
	ID       RuleID `json:"id"`
	Enabled  bool   `json:"enabled"`
	Priority int    `json:"priority"`
}

// defaultDescriptors lists every known rule with its default enablement and
// priority. Priority orders the trace, not the outcome: all enabled rules
// run and errors accumulate regardless.
var defaultDescriptors = []Descriptor{
	{ID: RulePatientValidation, Enabled: true, Priority: 1},
	{ID: RuleDoctorValidation, Enabled: true, Priority: 2},
	{ID: RuleServiceValidation, Enabled: true, Priority: 3},
	{ID: RuleDateValidation, Enabled: true, Priority: 4},
	{ID: RuleTimeConflictValidation, Enabled: true, Priority: 5},
	{ID: RulePermissionCheck, Enabled: true, Priority: 10},
	{ID: RuleDataSecurity, Enabled: true, Priority: 11},
	{ID: RuleInputSecurity, Enabled: true, Priority: 12},
	{ID: RuleFormatValidation, Enabled: true, Priority: 20},
	{ID: RuleRangeValidation, Enabled: true, Priority: 21},
	{ID: RuleDataTypeValidation, Enabled: true, Priority: 22},
	{ID: RuleEmergencyHandling, Enabled: true, Priority: 30},
	{ID: RuleOnlineHandling, Enabled: true, Priority: 31},
	{ID: RuleSpecialHandling, Enabled: true, Priority: 32},
	{ID: RuleLoadBalancing, Enabled: true, Priority: 90},
	{ID: RuleResourceOptimization, Enabled: true, Priority: 91},
	{ID: RuleExternalIntegration, Enabled: true, Priority: 92},
	{ID: RuleDataSync, Enabled: true, Priority: 93},
}

// Registry maps rule ids to their metadata. Built once at startup from the
// defaults plus configuration overrides and immutable afterwards, so it is
// safely shared across concurrent requests without locking.
//
// The registry is open: Enabled returns true for unknown rule names.
type Registry struct {
	descriptors map[RuleID]Descriptor
}

// NewRegistry builds the registry, disabling any rules named in disabled.
// Unknown names in disabled are ignored; disabling can only narrow the
// fixed rule set.
func NewRegistry(disabled []string) *Registry {
	off := make(map[RuleID]bool, len(disabled))
	for _, name := range disabled {
		off[RuleID(name)] = true
	}

	m := make(map[RuleID]Descriptor, len(defaultDescriptors))
	for _, d := range defaultDescriptors {
		if off[d.ID] {
			d.Enabled = false
		}
		m[d.ID] = d
	}
	return &Registry{descriptors: m}
}

// Enabled reports whether the rule should run. Unknown rules are enabled:
// rule-not-found means enabled, the opposite of the transition table's
// default-deny.
func (r *Registry) Enabled(id RuleID) bool {
	d, ok := r.descriptors[id]
	if !ok {
		return true
	}
	return d.Enabled
}

// Descriptor returns the metadata for a rule, if registered.
func (r *Registry) Descriptor(id RuleID) (Descriptor, bool) {
	d, ok := r.descriptors[id]
	return d, ok
}
