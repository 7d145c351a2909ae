package usecase

import (
	"errors"
	"strings"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var ErrNoGatewayActivated = errors.New("no payment gateway activated")

// IGatewayRegistry resolves which installed gateways are active and which one
// processes an order.
type IGatewayRegistry interface {
	Activated() []string
	Select(previous, payMethod string) (entities.GatewayDescriptor, entities.PayOption, error)
	RequiresSecureTransport() bool
	PayOptions() []entities.PayOption
	PayCards() []entities.PayCard
	Adapter(module string) (interfaces.IPaymentGateway, bool)
}

type GatewayRegistry struct {
	installed map[string]interfaces.IPaymentGateway
	active    []string
	logger    *zap.Logger
}

var _ IGatewayRegistry = (*GatewayRegistry)(nil)

// NewGatewayRegistry installs gateways and activates the configured subset.
// Activation order follows the configured list.
func NewGatewayRegistry(active []string, logger *zap.Logger, gateways ...interfaces.IPaymentGateway) *GatewayRegistry {
	r := &GatewayRegistry{installed: map[string]interfaces.IPaymentGateway{}, logger: logger.Named("gateway.registry")}
	for _, g := range gateways {
		if g == nil {
			continue
		}
		r.installed[g.Descriptor().Module] = g
	}

	seen := map[string]bool{}
	for _, m := range active {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		if _, ok := r.installed[m]; !ok {
			r.logger.Warn("configured gateway is not installed", zap.String("module", m))
			continue
		}
		r.active = append(r.active, m)
	}
	return r
}

func (r *GatewayRegistry) Activated() []string {
	out := make([]string, len(r.active))
	copy(out, r.active)
	return out
}

func (r *GatewayRegistry) Select(previous, payMethod string) (entities.GatewayDescriptor, entities.PayOption, error) {
	if len(r.active) == 0 {
		return entities.GatewayDescriptor{}, entities.PayOption{}, ErrNoGatewayActivated
	}

	payMethod = strings.TrimSpace(payMethod)
	option, found := r.option(payMethod)
	if payMethod != "" && !found {
		r.logger.Info("selected payment method is no longer available", zap.String("paymethod", payMethod))
	}

	if len(r.active) == 1 {
		d := r.installed[r.active[0]].Descriptor()
		if found && option.Processor == d.Module {
			return d, option, nil
		}
		return d, defaultOption(d), nil
	}

	if found {
		return r.installed[option.Processor].Descriptor(), option, nil
	}

	previous = strings.TrimSpace(previous)
	for _, m := range r.active {
		if m == previous {
			d := r.installed[m].Descriptor()
			return d, defaultOption(d), nil
		}
	}

	d := r.installed[r.active[0]].Descriptor()
	return d, defaultOption(d), nil
}

// RequiresSecureTransport is true when any active gateway needs it.
func (r *GatewayRegistry) RequiresSecureTransport() bool {
	for _, m := range r.active {
		if r.installed[m].RequiresSecureTransport() {
			return true
		}
	}
	return false
}

func (r *GatewayRegistry) PayOptions() []entities.PayOption {
	var out []entities.PayOption
	seen := map[string]bool{}
	for _, m := range r.active {
		for _, o := range r.installed[m].Descriptor().PayOptions() {
			if seen[o.Slug] {
				continue
			}
			seen[o.Slug] = true
			out = append(out, o)
		}
	}
	return out
}

// PayCards is the union of cards accepted by active gateways, in catalogue order.
func (r *GatewayRegistry) PayCards() []entities.PayCard {
	accepted := map[string]bool{}
	for _, m := range r.active {
		for _, c := range r.installed[m].AcceptedCards() {
			accepted[c.Symbol] = true
		}
	}
	var out []entities.PayCard
	for _, c := range entities.PayCards() {
		if accepted[c.Symbol] {
			out = append(out, c)
		}
	}
	return out
}

// Adapter looks up any installed gateway, active or not, so existing
// purchases stay serviceable after a gateway is deactivated.
func (r *GatewayRegistry) Adapter(module string) (interfaces.IPaymentGateway, bool) {
	g, ok := r.installed[strings.TrimSpace(module)]
	return g, ok
}

func (r *GatewayRegistry) option(slug string) (entities.PayOption, bool) {
	if slug == "" {
		return entities.PayOption{}, false
	}
	for _, o := range r.PayOptions() {
		if o.Slug == slug {
			return o, true
		}
	}
	return entities.PayOption{}, false
}

func defaultOption(d entities.GatewayDescriptor) entities.PayOption {
	opts := d.PayOptions()
	if len(opts) == 0 {
		return entities.PayOption{Processor: d.Module}
	}
	return opts[0]
}
