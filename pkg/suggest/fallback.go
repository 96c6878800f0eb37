package suggest

// DefaultDemoRecords returns the placeholder batch served in demo mode when
// the agent path fails. Demo scaffolding, not a resilience mechanism.
func DefaultDemoRecords() Batch {
	return Batch{
		{
			Extract:     "HTA",
			Code:        "I10",
			Description: "Essential (primary) hypertension",
			URL:         "https://icd.who.int/browse10/2019/en#/I10",
		},
		{
			Extract:     "fracture periprothétique du femur proximal gauche",
			Code:        "M96.6",
			Description: "Fracture of bone following insertion of orthopaedic implant",
		},
		{
			Extract:     "hematome sous dural chronique",
			Code:        "I62.0",
			Description: "Subdural haemorrhage (nontraumatic)",
		},
	}
}

func (c *Config) fallbackBatch() Batch {
	if !c.DemoFallback {
		return nil
	}
	if len(c.FallbackRecords) > 0 {
		out := make(Batch, len(c.FallbackRecords))
		copy(out, c.FallbackRecords)
		return out
	}
	return DefaultDemoRecords()
}
