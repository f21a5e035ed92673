package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Centralizes Redis cache keys and TTL values for the casaroja backend.
// Pattern: casaroja:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // categories, locations
	TTL_STATIC_SHORT = 6 * time.Hour  // user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // event listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // upcoming events
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // ticket listings
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // live availability counts
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "casaroja"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENTS_LIST     = CACHE_PREFIX + ":events:list"     // + :page:X:limit:Y:status:Z
	CACHE_KEY_EVENTS_UPCOMING = CACHE_PREFIX + ":events:upcoming" // + :page:X:limit:Y
	CACHE_KEY_EVENT_DETAIL    = CACHE_PREFIX + ":events:detail:uuid:"
	CACHE_KEY_EVENT_SPOTS     = CACHE_PREFIX + ":events:spots:uuid:"
)

const (
	TTL_EVENT_LIST     = TTL_SEMI_STATIC_SHORT
	TTL_EVENT_UPCOMING = TTL_SEMI_STATIC_QUICK
	TTL_EVENT_DETAIL   = TTL_SEMI_STATIC_MEDIUM
	TTL_EVENT_SPOTS    = TTL_REALTIME_SHORT
)

// ================== CATEGORIES MODULE ==================

const (
	CACHE_KEY_CATEGORIES_ACTIVE = CACHE_PREFIX + ":categories:active:all"
	CACHE_KEY_CATEGORY_BY_ID    = CACHE_PREFIX + ":categories:detail:uuid:"
)

const (
	TTL_CATEGORIES_ACTIVE = TTL_STATIC_LONG
	TTL_CATEGORY_DETAIL   = TTL_STATIC_LONG
)

// ================== LOCATIONS MODULE ==================

const (
	CACHE_KEY_LOCATIONS_ACTIVE = CACHE_PREFIX + ":locations:active:all"
	CACHE_KEY_LOCATION_BY_ID   = CACHE_PREFIX + ":locations:detail:uuid:"
)

const (
	TTL_LOCATIONS_ACTIVE = TTL_STATIC_LONG
	TTL_LOCATION_DETAIL  = TTL_STATIC_LONG
)

// ================== TRANSPORT MODULE ==================

const (
	CACHE_KEY_TRANSPORT_BY_EVENT = CACHE_PREFIX + ":transport:by_event:uuid:"
	CACHE_KEY_TRANSPORT_SEATS    = CACHE_PREFIX + ":transport:seats:uuid:"
)

const (
	TTL_TRANSPORT_BY_EVENT = TTL_DYNAMIC_SHORT
	TTL_TRANSPORT_SEATS    = TTL_REALTIME_SHORT
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_EVENT_REVENUE  = CACHE_PREFIX + ":analytics:event:revenue:uuid:"
	CACHE_KEY_ANALYTICS_CULTOR_EARNING = CACHE_PREFIX + ":analytics:cultor:earnings:uuid:"
	CACHE_KEY_ANALYTICS_PLATFORM       = CACHE_PREFIX + ":analytics:platform:overview"
)

const (
	TTL_ANALYTICS_EVENT    = TTL_DYNAMIC_MEDIUM
	TTL_ANALYTICS_CULTOR   = TTL_DYNAMIC_MEDIUM
	TTL_ANALYTICS_PLATFORM = TTL_SEMI_STATIC_SHORT
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_EVENT_ALL     = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_CATEGORIES    = CACHE_PREFIX + ":categories:*"
	PATTERN_INVALIDATE_LOCATIONS     = CACHE_PREFIX + ":locations:*"
	PATTERN_INVALIDATE_TRANSPORT     = CACHE_PREFIX + ":transport:*"
	PATTERN_INVALIDATE_ANALYTICS_ALL = CACHE_PREFIX + ":analytics:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventListKey(page, limit int, status string) string {
	if status != "" {
		return fmt.Sprintf("%s:page:%d:limit:%d:status:%s", CACHE_KEY_EVENTS_LIST, page, limit, status)
	}
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_EVENTS_LIST, page, limit)
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildEventSpotsKey(eventID string) string {
	return CACHE_KEY_EVENT_SPOTS + eventID
}

func BuildTransportByEventKey(eventID string) string {
	return CACHE_KEY_TRANSPORT_BY_EVENT + eventID
}

func BuildTransportSeatsKey(serviceID string) string {
	return CACHE_KEY_TRANSPORT_SEATS + serviceID
}

func BuildEventRevenueKey(eventID string) string {
	return CACHE_KEY_ANALYTICS_EVENT_REVENUE + eventID
}

func BuildCultorEarningsKey(cultorID string) string {
	return CACHE_KEY_ANALYTICS_CULTOR_EARNING + cultorID
}
