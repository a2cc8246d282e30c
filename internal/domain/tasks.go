package domain

// ConfirmationEmailTask carries the payload for the conference-creation
// confirmation email job.
type ConfirmationEmailTask struct {
	Email          string
	ConferenceName string
	ConferenceInfo string
}

// SpeakerCheckTask carries the payload for the featured-speaker scan.
// The conference is identified both by storage ID (for the re-query)
// and websafe key (for the cache entry).
type SpeakerCheckTask struct {
	Speaker              string
	ConferenceID         string
	WebsafeConferenceKey string
}

// TaskQueue enqueues background work following a mutation. Enqueue is
// best-effort and fire-and-forget: it never blocks and failures are not
// observed by the caller of the originating mutation.
type TaskQueue interface {
	EnqueueConfirmationEmail(task ConfirmationEmailTask)
	EnqueueSpeakerCheck(task SpeakerCheckTask)
}
