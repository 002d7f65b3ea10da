package mappers

import (
	"time"

	"permitflow/internal/domain/packet"
	"permitflow/internal/infrastructure/persistence/models"
)

// PacketMapper handles the conversion between Packet domain entities and
// persistence models.
type PacketMapper interface {
	ToModel(p *packet.Packet) *models.PacketModel
	ToDomain(model *models.PacketModel) (*packet.Packet, error)
}

type PacketMapperImpl struct{}

func NewPacketMapper() PacketMapper {
	return &PacketMapperImpl{}
}

func (m *PacketMapperImpl) ToModel(p *packet.Packet) *models.PacketModel {
	return &models.PacketModel{
		ID:            p.ID(),
		SID:           p.SID(),
		SubmissionID:  p.SubmissionID(),
		FileLocation:  p.FileLocation(),
		FileSizeBytes: p.FileSizeBytes(),
		CreatedAt:     p.CreatedAt().UnixMilli(),
	}
}

func (m *PacketMapperImpl) ToDomain(model *models.PacketModel) (*packet.Packet, error) {
	return packet.ReconstructPacket(
		model.ID,
		model.SID,
		model.SubmissionID,
		model.FileLocation,
		model.FileSizeBytes,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}
