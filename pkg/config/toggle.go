package config

// ApplyMasterToggle flips a master toggle and returns the full cascade as a
// new Settings value. Disabling a master forces its dependent toggles off;
// enabling one leaves dependents untouched (they keep whatever they were
// last set to). The input is never mutated.
//
// Categories: "alias", "scope.tags", "cursor".
func ApplyMasterToggle(s Settings, category string, enabled bool) Settings {
	out := s

	switch category {
	case "alias":
		out.Alias.Enabled = enabled
		if !enabled {
			out.Alias.OnlyWhenDiffers = false
			out.Alias.KeepEmptyOff = false
		}
	case "scope.tags":
		if !enabled {
			out.Scope.Tags.Tags = nil
			out.Scope.Tags.MatchChildren = false
		}
	case "cursor":
		out.Title.MoveCursorToFirstLine = enabled
		if !enabled {
			out.Title.PlaceCursorAtEnd = false
		}
	}

	return out
}
