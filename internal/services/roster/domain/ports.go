package domain

import "context"

// ReaderPort reads the participant directory
type ReaderPort interface {
	List(ctx context.Context) ([]Participant, error)
	ByChatID(ctx context.Context, chatID int64) (Participant, error)

	// ChatIDs returns the set of tracked chat ids, used to filter
	// incoming chat messages
	ChatIDs(ctx context.Context) (map[int64]struct{}, error)

	// SocialIndex maps social id to chat id for every linked participant
	SocialIndex(ctx context.Context) (map[string]int64, error)
}

// WriterPort mutates the participant directory
type WriterPort interface {
	Upsert(ctx context.Context, p Participant) error
	LinkSocial(ctx context.Context, chatID int64, handle, socialID string) error
}

// Ports is a convenience interface for ReaderPort and WriterPort
type Ports interface {
	ReaderPort
	WriterPort
}
