package seal

import (
	"context"

	"github.com/sirupsen/logrus"

	"paramseal/internal/domain"
	"paramseal/internal/envelope"
)

// Service seals values for whichever key its KeyFetcher resolves.
type Service struct {
	keys   domain.KeyFetcher
	sealer *envelope.Sealer
	log    *logrus.Entry
}

// New returns a Service. A nil sealer gets envelope defaults.
func New(keys domain.KeyFetcher, sealer *envelope.Sealer, log *logrus.Entry) *Service {
	if sealer == nil {
		sealer = envelope.NewSealer()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{keys: keys, sealer: sealer, log: log}
}

// Seal returns the bare envelope for cleartext.
func (s *Service) Seal(ctx context.Context, cleartext string) (string, error) {
	key, err := s.keys.FetchKey(ctx)
	if err != nil {
		return "", err
	}
	out, err := s.sealer.SealKey(ctx, key.Key, cleartext)
	if err != nil {
		return "", err
	}
	s.log.WithField("key_id", key.ID).Debug("sealed parameter")
	return out, nil
}

// SealParam returns cleartext sealed and shaped as a secret job parameter.
func (s *Service) SealParam(ctx context.Context, cleartext string) (domain.SecretParam, error) {
	out, err := s.Seal(ctx, cleartext)
	if err != nil {
		return domain.SecretParam{}, err
	}
	return domain.NewSecretParam(out), nil
}

var _ domain.SealService = (*Service)(nil)
