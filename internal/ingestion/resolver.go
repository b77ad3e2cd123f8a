package ingestion

import (
	"context"
	"fmt"
	"sync"

	"github.com/guttosm/salespulse/internal/storage"
)

// emailResolver maps client emails to ids, caching hits across files.
type emailResolver struct {
	repo storage.ClientsRepository

	mu    sync.RWMutex
	cache map[string]string
}

func newEmailResolver(repo storage.ClientsRepository) *emailResolver {
	return &emailResolver{repo: repo, cache: make(map[string]string)}
}

// resolve returns the ids of the given emails. Emails without a client are absent from the result.
func (r *emailResolver) resolve(ctx context.Context, emails []string) (map[string]string, error) {
	out := make(map[string]string, len(emails))
	var missing []string

	r.mu.RLock()
	for _, e := range emails {
		if id, ok := r.cache[e]; ok {
			out[e] = id
		} else {
			missing = append(missing, e)
		}
	}
	r.mu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	found, err := r.repo.FindIDsByEmails(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("resolve client emails: %w", err)
	}

	r.mu.Lock()
	for e, id := range found {
		r.cache[e] = id
		out[e] = id
	}
	r.mu.Unlock()

	return out, nil
}
