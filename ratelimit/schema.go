package ratelimit

import "github.com/invopop/jsonschema"

// LimitsSchema returns a JSON Schema describing the Limits profile
// format. Useful for validating limits files in editors and CI before
// they reach LoadLimits.
func LimitsSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	return reflector.Reflect(&Limits{})
}
