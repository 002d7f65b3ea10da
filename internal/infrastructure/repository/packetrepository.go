package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"permitflow/internal/domain/packet"
	"permitflow/internal/infrastructure/persistence/mappers"
	"permitflow/internal/infrastructure/persistence/models"
	db "permitflow/internal/shared/db"
)

type PacketRepository struct {
	db     *gorm.DB
	mapper mappers.PacketMapper
}

func NewPacketRepository(db *gorm.DB) *PacketRepository {
	return &PacketRepository{
		db:     db,
		mapper: mappers.NewPacketMapper(),
	}
}

func (r *PacketRepository) Save(ctx context.Context, p *packet.Packet) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save packet: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *PacketRepository) FindBySubmissionID(ctx context.Context, submissionID uint) (*packet.Packet, error) {
	var model models.PacketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("submission_id = ?", submissionID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, packet.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find packet: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
