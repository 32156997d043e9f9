//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"chat-relay/domain"
)

type IMessageRepository interface {
	StoreMessage(message DiskMessage) error
	ReplayFrom(room domain.RoomID, afterSeq uint64) ([]DiskMessage, error)
	LastStoredSequence(room domain.RoomID) (uint64, error)
}

// MessageRepository is the document-store side of the reconciler, backed by
// BadgerDB. One entry per accepted message, keyed by (room, sequence).
type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// DiskMessage is the stored shape of a message, decoupled from the domain
// struct so the wire layout can evolve independently.
type DiskMessage struct {
	ID       uuid.UUID `json:"id"`
	Room     string    `json:"room"`
	Seq      uint64    `json:"seq"`
	SenderID string    `json:"sender_id"`
	Sender   string    `json:"sender"`
	Payload  string    `json:"payload"`
	At       time.Time `json:"at"`
}

// messageKey formats "msg:{room}:{seq_padded}". The 19-digit zero padding
// makes lexicographical key order equal to sequence order, so a prefix scan
// returns a gapless ascending view of everything successfully recorded.
func messageKey(room domain.RoomID, seq uint64) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d", room, seq))
}

// StoreMessage persists a message under its (room, sequence) key.
// The write is idempotent: the reconciler retries deliveries at-least-once
// and a second attempt simply overwrites the identical value.
func (m MessageRepository) StoreMessage(message DiskMessage) error {
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(domain.RoomID(message.Room), message.Seq), bytes)
	})
}

// ReplayFrom returns every stored message of the room with sequence strictly
// greater than afterSeq, ascending. Thanks to the padded key the iterator
// already yields sequence order, no sorting needed.
func (m MessageRepository) ReplayFrom(room domain.RoomID, afterSeq uint64) ([]DiskMessage, error) {
	var raw [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("msg:%s:", room))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(messageKey(room, afterSeq+1)); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				cp := make([]byte, len(value))
				copy(cp, value)
				raw = append(raw, cp)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]DiskMessage, 0, len(raw))
	for _, b := range raw {
		var dm DiskMessage
		if err = json.Unmarshal(b, &dm); err != nil {
			return nil, err
		}
		messages = append(messages, dm)
	}
	return messages, nil
}

// LastStoredSequence finds the highest recorded sequence for a room with a
// reverse seek past the end of the room's key range. Returns 0 when the room
// has no recorded messages yet; the sequencer seeds its counter from this.
func (m MessageRepository) LastStoredSequence(room domain.RoomID) (uint64, error) {
	var last uint64
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", room)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek to the oldest possible position msg:{room}:9999999999999999999
		// then step back onto the highest real key.
		seekKey := append([]byte{}, prefix...)
		seekKey = append(seekKey, []byte("9999999999999999999")...)
		it.Seek(seekKey)
		if !it.ValidForPrefix(prefix) {
			return nil
		}
		key := string(it.Item().Key())
		seq, err := strconv.ParseUint(strings.TrimPrefix(key, prefixStr), 10, 64)
		if err != nil {
			return fmt.Errorf("corrupt message key %q: %w", key, err)
		}
		last = seq
		return nil
	})
	return last, err
}

// FromDomain converts an accepted message to its stored shape.
func FromDomain(m domain.Message) DiskMessage {
	return DiskMessage{
		ID:       m.ID,
		Room:     string(m.Room),
		Seq:      m.Seq,
		SenderID: m.Sender.ID,
		Sender:   m.Sender.DisplayName,
		Payload:  m.Payload,
		At:       m.At.UTC(),
	}
}

// ToDomain restores the domain shape of a stored message.
func ToDomain(dm DiskMessage) domain.Message {
	return domain.Message{
		ID:      dm.ID,
		Room:    domain.RoomID(dm.Room),
		Seq:     dm.Seq,
		Sender:  domain.Identity{ID: dm.SenderID, DisplayName: dm.Sender},
		Payload: dm.Payload,
		At:      dm.At.UTC(),
	}
}
