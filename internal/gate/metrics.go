// AngelaMos | 2026
// metrics.go

package gate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAllow = "allow"
	outcomeDeny  = "deny"

	reasonNone           = "none"
	reasonMissingToken   = "missing_token"
	reasonInvalidToken   = "invalid_token"
	reasonExpiredToken   = "expired_token"
	reasonUnknownAccount = "unknown_account"
	reasonBanned         = "banned"
	reasonInactive       = "inactive"
	reasonPermission     = "permission"
	reasonMuted          = "muted"
)

var decisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "cms",
		Name:      "gate_decisions_total",
		Help:      "Authorization decisions by outcome and deny reason",
	},
	[]string{"outcome", "reason"},
)
