// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for structural problems using the
// validate struct tags plus the cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid value for %s (rule %s)", e.Namespace(), e.Tag())
		}
		return err
	}

	// The clamp must sit below the trigger, otherwise a clamped projection
	// would immediately re-trigger the cap.
	if c.Engine.ProjectionClampRatio >= c.Engine.ProjectionSanityCapRatio {
		return fmt.Errorf("engine.projection_clamp_ratio (%.2f) must be below engine.projection_sanity_cap_ratio (%.2f)",
			c.Engine.ProjectionClampRatio, c.Engine.ProjectionSanityCapRatio)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	return nil
}
