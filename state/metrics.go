package state

import "github.com/prometheus/client_golang/prometheus"

const (
	kindGuild   = "guild"
	kindChannel = "channel"
	kindMember  = "member"
	kindRole    = "role"
	kindUser    = "user"
)

var lookupCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "discord_state_lookups_total",
		Help: "Discord State Lookups",
	},
	[]string{"kind", "result"},
)

// Collectors returns the state metrics so the caller can register them.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{lookupCount}
}

func observe(kind string, ok bool) {
	if ok {
		lookupCount.WithLabelValues(kind, "hit").Inc()
	} else {
		lookupCount.WithLabelValues(kind, "miss").Inc()
	}
}
