package config

// Label renders a rule identifier in format f. Rules without a name are
// always shown by ID; an empty or unknown format means name.
func (f RuleFormat) Label(ruleID, ruleName string) string {
	switch {
	case ruleName == "", f == RuleFormatID:
		return ruleID
	case f == RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}

// IsValid reports whether f is one of the known rule formats.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	}
	return false
}
