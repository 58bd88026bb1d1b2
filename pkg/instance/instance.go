package instance

import "github.com/angelmondragon/sweetshop-backend/pkg/env"

var idKeys = []string{"SWEETSHOP_INSTANCE_ID", "DYNO", "HOSTNAME"}

// GetID returns the process instance label used in startup logs, or "local".
func GetID() string {
	for _, key := range idKeys {
		if id := env.Get(key, ""); id != "" {
			return id
		}
	}
	return "local"
}
