package stats

// PlayerSummary aggregates one player's event lists into the numbers a
// dashboard leads with. Rate fields are nil when the game produced no
// attempts to measure.
type PlayerSummary struct {
	ComboCount         int      `json:"comboCount"`
	TotalComboDamage   float64  `json:"totalComboDamage"`
	HighestComboDamage float64  `json:"highestComboDamage"`
	KillCombos         int      `json:"killCombos"`
	WavedashCount      int      `json:"wavedashCount"`
	WavelandCount      int      `json:"wavelandCount"`
	AvgWavedashAngle   *float64 `json:"avgWavedashAngle"`
	DashCount          int      `json:"dashCount"`
	DashdanceCount     int      `json:"dashdanceCount"`
	DashesPerMinute    float64  `json:"dashesPerMinute"`
	TechCount          int      `json:"techCount"`
	MissedTechCount    int      `json:"missedTechCount"`
	TechPunishedCount  int      `json:"techPunishedCount"`
	TakeHitCount       int      `json:"takeHitCount"`
	SDIInputsTotal     int      `json:"sdiInputsTotal"`
	AvgDIEfficacy      *float64 `json:"avgDiEfficacy"`
	LCancelAttempts    int      `json:"lCancelAttempts"`
	LCancelSuccesses   int      `json:"lCancelSuccesses"`
	LCancelRate        *float64 `json:"lCancelRate"`
	ShieldDropCount    int      `json:"shieldDropCount"`
}

// buildSummary folds the event lists in ps into a PlayerSummary.
// frameCount scales the per-minute rates at the game's 60 frames per
// second.
func buildSummary(ps *PlayerStats, frameCount int) *PlayerSummary {
	s := &PlayerSummary{
		ComboCount:      len(ps.Combos),
		DashCount:       len(ps.Dashes),
		TechCount:       len(ps.Techs),
		TakeHitCount:    len(ps.TakeHits),
		LCancelAttempts: len(ps.LCancels),
		ShieldDropCount: len(ps.ShieldDrops),
	}

	for _, c := range ps.Combos {
		dmg := float64(c.TotalDamage())
		s.TotalComboDamage += dmg
		if dmg > s.HighestComboDamage {
			s.HighestComboDamage = dmg
		}
		if c.DidKill {
			s.KillCombos++
		}
	}

	angleSum, angleN := 0.0, 0
	for _, w := range ps.Wavedashes {
		if w.Waveland {
			s.WavelandCount++
		} else {
			s.WavedashCount++
		}
		if w.Direction != "" {
			angleSum += w.Angle
			angleN++
		}
	}
	if angleN > 0 {
		s.AvgWavedashAngle = float64Ptr(angleSum / float64(angleN))
	}

	for _, d := range ps.Dashes {
		if d.IsDashdance {
			s.DashdanceCount++
		}
	}
	if frameCount > 0 {
		s.DashesPerMinute = float64(s.DashCount) / (float64(frameCount) / 3600)
	}

	for _, t := range ps.Techs {
		if t.IsMissedTech {
			s.MissedTechCount++
		}
		if t.WasPunished {
			s.TechPunishedCount++
		}
	}

	effSum, effN := 0.0, 0
	for _, h := range ps.TakeHits {
		s.SDIInputsTotal += len(h.SDIInputs)
		if h.DIEfficacy != nil {
			effSum += *h.DIEfficacy
			effN++
		}
	}
	if effN > 0 {
		s.AvgDIEfficacy = float64Ptr(effSum / float64(effN))
	}

	for _, l := range ps.LCancels {
		if l.Success {
			s.LCancelSuccesses++
		}
	}
	if s.LCancelAttempts > 0 {
		s.LCancelRate = float64Ptr(float64(s.LCancelSuccesses) / float64(s.LCancelAttempts) * 100)
	}

	return s
}
