package firestore

import (
	"context"

	"stripe-checkout-bridge/internal/core/domain"
	"stripe-checkout-bridge/pkg/apperror"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RecordStore implements ports.RecordStore on a Firestore collection.
type RecordStore struct {
	client     *firestore.Client
	collection string
}

// NewRecordStore creates a record store over the given collection.
func NewRecordStore(client *firestore.Client, collection string) *RecordStore {
	return &RecordStore{client: client, collection: collection}
}

// MarkPaid updates the document at docID with the settlement fields and a
// server-assigned paidAt. Update (as opposed to Set) fails on a missing
// document: the bridge never creates payment records, only confirms them.
// Re-applying the same settlement overwrites the same values, so duplicate
// webhook deliveries converge on the same document state.
func (s *RecordStore) MarkPaid(ctx context.Context, docID string, set domain.Settlement) error {
	_, err := s.client.Collection(s.collection).Doc(docID).Update(ctx, []firestore.Update{
		{Path: "isPaid", Value: true},
		{Path: "paymentId", Value: set.PaymentID},
		{Path: "paymentStatus", Value: set.PaymentStatus},
		{Path: "paymentAmount", Value: set.Amount},
		{Path: "currency", Value: set.Currency},
		{Path: "paidAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apperror.RecordNotFound(docID)
		}
		return apperror.Persistence(err)
	}
	return nil
}
