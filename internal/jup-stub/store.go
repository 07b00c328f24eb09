package jupstub

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/sirupsen/logrus"
)

// Store holds the swaps the stub serves, keyed by wallet.
type Store struct {
	mu           sync.RWMutex
	transactions map[string][]models.Transaction
	log          *logrus.Entry
}

func NewStore(log *logrus.Logger, transactions map[string][]models.Transaction) *Store {
	if transactions == nil {
		transactions = make(map[string][]models.Transaction)
	}

	return &Store{
		transactions: transactions,
		log:          log.WithField("module", "jup_stub_store"),
	}
}

// LoadStore reads a JSON object mapping wallet ids to transaction arrays.
func LoadStore(log *logrus.Logger, path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var transactions map[string][]models.Transaction

	err = json.Unmarshal(data, &transactions)
	if err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	store := NewStore(log, transactions)
	store.log.Infof("Loaded %d wallets from %s", len(transactions), path)

	return store, nil
}

func (s *Store) Add(wallet string, transactions ...models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions[wallet] = append(s.transactions[wallet], transactions...)
}

// GetTransactions never returns nil so unknown wallets encode as an empty array.
func (s *Store) GetTransactions(wallet string) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := s.transactions[wallet]
	if transactions == nil {
		return []models.Transaction{}
	}

	return append([]models.Transaction(nil), transactions...)
}
