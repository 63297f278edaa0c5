package validation

// Remap rewrites structural errors rooted at the generic "body" token to the
// source the parameter came from, and reports the raw string the client sent
// instead of the coerced value. Errors that do not name a known parameter are
// returned unchanged.
func Remap(errs []ValidationErrorDetail, defs []ParameterDefinition, raw map[string]string) []ValidationErrorDetail {
	byName := make(map[string]*ParameterDefinition, len(defs))
	for i := range defs {
		byName[defs[i].Name] = &defs[i]
	}

	out := make([]ValidationErrorDetail, 0, len(errs))
	for _, e := range errs {
		if len(e.Loc) < 2 || e.Loc[0] != LocationBody {
			out = append(out, e)
			continue
		}
		def, ok := byName[e.Loc[1]]
		if !ok {
			out = append(out, e)
			continue
		}

		loc := make([]string, len(e.Loc))
		copy(loc, e.Loc)
		loc[0] = def.Source.Location()
		loc[1] = def.LookupName()
		e.Loc = loc

		if original, ok := raw[def.Name]; ok {
			e.Input = original
		}
		out = append(out, e)
	}
	return out
}
