package repository

import (
	"context"
	"fmt"

	"bolao/database"
	"bolao/events"
	"bolao/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	participanteRepo service.ParticipanteRepository
	provaRepo        service.ProvaRepository
	apostaRepo       service.ApostaRepository
	ledgerRepo       service.LedgerRepository
	profileRepo      service.ProfileRepository
	streakRepo       service.StreakRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.participanteRepo = newParticipanteRepositoryWithTx(tx)
	u.provaRepo = newProvaRepositoryWithTx(tx)
	u.apostaRepo = newApostaRepositoryWithTx(tx)
	u.ledgerRepo = newLedgerRepositoryWithTx(tx)
	u.profileRepo = newProfileRepositoryWithTx(tx)
	u.streakRepo = newStreakRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// ParticipanteRepository returns the participante repository for this unit of work
func (u *unitOfWork) ParticipanteRepository() service.ParticipanteRepository {
	if u.participanteRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.participanteRepo
}

// ProvaRepository returns the prova repository for this unit of work
func (u *unitOfWork) ProvaRepository() service.ProvaRepository {
	if u.provaRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.provaRepo
}

// ApostaRepository returns the aposta repository for this unit of work
func (u *unitOfWork) ApostaRepository() service.ApostaRepository {
	if u.apostaRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.apostaRepo
}

// LedgerRepository returns the ledger repository for this unit of work
func (u *unitOfWork) LedgerRepository() service.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// ProfileRepository returns the profile repository for this unit of work
func (u *unitOfWork) ProfileRepository() service.ProfileRepository {
	if u.profileRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.profileRepo
}

// StreakRepository returns the streak repository for this unit of work
func (u *unitOfWork) StreakRepository() service.StreakRepository {
	if u.streakRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.streakRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
