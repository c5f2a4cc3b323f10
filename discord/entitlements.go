package discord

import (
	"errors"
	"time"
)

// EntitlementType represents how an entitlement was acquired.
type EntitlementType int

const (
	EntitlementTypeUnknown                 EntitlementType = -1
	EntitlementTypePurchase                EntitlementType = 1
	EntitlementTypePremiumSubscription     EntitlementType = 2
	EntitlementTypeDeveloperGift           EntitlementType = 3
	EntitlementTypeTestModePurchase        EntitlementType = 4
	EntitlementTypeFreePurchase            EntitlementType = 5
	EntitlementTypeUserGift                EntitlementType = 6
	EntitlementTypePremiumPurchase         EntitlementType = 7
	EntitlementTypeApplicationSubscription EntitlementType = 8
)

var entitlementTypes = []EntitlementType{
	EntitlementTypePurchase,
	EntitlementTypePremiumSubscription,
	EntitlementTypeDeveloperGift,
	EntitlementTypeTestModePurchase,
	EntitlementTypeFreePurchase,
	EntitlementTypeUserGift,
	EntitlementTypePremiumPurchase,
	EntitlementTypeApplicationSubscription,
}

func EntitlementTypeFromCode(code int) EntitlementType {
	return fromCode(entitlementTypes, EntitlementType(code), EntitlementTypeUnknown)
}

func (t *EntitlementType) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, t, EntitlementTypeFromCode)
}

var ErrNotTestEntitlement = errors.New("only test entitlements can be deleted")

// Entitlement represents access to a premium offering of an application.
type Entitlement struct {
	UserID         *Snowflake      `json:"user_id,omitempty"`
	StartsAt       *Timestamp      `json:"starts_at,omitempty"`
	EndsAt         *Timestamp      `json:"ends_at,omitempty"`
	GuildID        *Snowflake      `json:"guild_id,omitempty"`
	SubscriptionID *Snowflake      `json:"subscription_id,omitempty"`
	ID             Snowflake       `json:"id"`
	SkuID          Snowflake       `json:"sku_id"`
	ApplicationID  Snowflake       `json:"application_id"`
	Type           EntitlementType `json:"type"`
	Deleted        bool            `json:"deleted"`
	Consumed       bool            `json:"consumed"`
}

// IsActive reports whether the entitlement grants access at t.
// Test entitlements have no start or end.
func (e Entitlement) IsActive(t time.Time) bool {
	if e.Deleted {
		return false
	}

	if e.StartsAt != nil {
		if start, ok := e.StartsAt.Time(); ok && t.Before(start) {
			return false
		}
	}

	if e.EndsAt != nil {
		if end, ok := e.EndsAt.Time(); ok && !t.Before(end) {
			return false
		}
	}

	return true
}

// Consume marks a one-time purchase as used.
func (e Entitlement) Consume(s *Session) (*RestAction[struct{}], error) {
	route, err := RouteConsumeEntitlement.Compile(e.ApplicationID.String(), e.ID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, nil), nil
}

// Delete removes a test entitlement.
func (e Entitlement) Delete(s *Session) (*RestAction[struct{}], error) {
	if e.Type != EntitlementTypeTestModePurchase {
		return nil, ErrNotTestEntitlement
	}

	route, err := RouteDeleteTestEntitlement.Compile(e.ApplicationID.String(), e.ID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[struct{}](s, route, nil), nil
}
