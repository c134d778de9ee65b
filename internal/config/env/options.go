package envconfig

import "github.com/caarlos0/env/v11"

// Prefix is prepended to every variable name.
const Prefix = "PLANCAD_"

func options() env.Options {
	return env.Options{Prefix: Prefix}
}
