package domain

// Cache key for the "nearly sold out" announcement.
const AnnouncementCacheKey = "RECENT_ANNOUNCEMENTS"

const featuredSpeakerCachePrefix = "FEATURED_SPEAKER_"

// FeaturedSpeakerCacheKey returns the cache key for a conference's
// featured-speaker summary.
func FeaturedSpeakerCacheKey(websafeConferenceKey string) string {
	return featuredSpeakerCachePrefix + websafeConferenceKey
}

// Cache is the process-wide best-effort key/value side channel for
// announcement and featured-speaker text. Entries are never a source of
// truth; absence means "no data yet", not an error.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}
