package schema

// ResponseSchema describes the contract in the OpenAPI subset accepted by
// Gemini structured output. meta is left out because the model never owns it.
// A fresh map is returned on every call.
func ResponseSchema() map[string]any {
	confidence := func() map[string]any {
		return map[string]any{"type": "NUMBER", "minimum": 0, "maximum": 1}
	}

	decision := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"statement":  map[string]any{"type": "STRING"},
			"confidence": confidence(),
		},
		"required":         []string{"statement", "confidence"},
		"propertyOrdering": []string{"statement", "confidence"},
	}

	task := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"title":       map[string]any{"type": "STRING"},
			"description": map[string]any{"type": "STRING"},
			"priority":    map[string]any{"type": "STRING", "format": "enum", "enum": priorityLiterals()},
			// enum is STRING-only in this dialect, so the set goes in the description
			"complexity": map[string]any{
				"type":        "INTEGER",
				"description": "Fibonacci story points: " + joinList(complexityLiterals()),
			},
			"domain":     map[string]any{"type": "STRING", "format": "enum", "enum": domainLiterals()},
			"owner_hint": map[string]any{"type": "STRING", "nullable": true, "description": "Role or team, never a person's name"},
			"confidence": confidence(),
			"reasoning":  map[string]any{"type": "STRING", "nullable": true},
		},
		"required": []string{"title", "description", "priority", "complexity", "domain", "confidence"},
		"propertyOrdering": []string{
			"title", "description", "priority", "complexity", "domain",
			"owner_hint", "confidence", "reasoning",
		},
	}

	noise := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"text":   map[string]any{"type": "STRING"},
			"reason": map[string]any{"type": "STRING"},
		},
		"required":         []string{"text", "reason"},
		"propertyOrdering": []string{"text", "reason"},
	}

	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"decisions": map[string]any{"type": "ARRAY", "items": decision},
			"tasks":     map[string]any{"type": "ARRAY", "items": task},
			"noise":     map[string]any{"type": "ARRAY", "items": noise},
		},
		"required":         []string{"decisions", "tasks", "noise"},
		"propertyOrdering": []string{"decisions", "tasks", "noise"},
	}
}
