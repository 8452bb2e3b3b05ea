package service

import (
	"context"
	"fmt"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/ports/driven"
	"membro-hub/internal/mylogger"
)

func str(s string) *string { return &s }

// SeedDemo creates a small demonstration roster with acquaintance edges.
// It is a no-op when members already exist.
func SeedDemo(ctx context.Context, membroRepo driven.IMembroRepo, mylog mylogger.Logger) error {
	mylog = mylog.Action("SeedDemo")

	count, err := membroRepo.Count(ctx, dto.Filter{})
	if err != nil {
		return fmt.Errorf("cannot count membros: %w", err)
	}
	if count > 0 {
		mylog.Warn("membros already present, seed skipped")
		return nil
	}

	demo := []models.Membro{
		{
			Nome:           "WILSON PENIN COUTO",
			Sexo:           str("Masculino"),
			Concurso:       str("2001"),
			CargoEfetivo:   str("Promotor"),
			EmailPessoal:   str("wilson@example.com"),
			ComarcaLotacao: str("BELO HORIZONTE"),
		},
		{
			Nome:           "WESLEY LEITE VAZ",
			Sexo:           str("Masculino"),
			Concurso:       str("2002"),
			CargoEfetivo:   str("Promotor"),
			EmailPessoal:   str("wesley@example.com"),
			ComarcaLotacao: str("BELO HORIZONTE"),
		},
		{
			Nome:           "VANESSA CAMPOLINA REBELLO HORTA",
			Sexo:           str("Feminino"),
			Concurso:       str("2003"),
			CargoEfetivo:   str("Promotora"),
			EmailPessoal:   str("vanessa@example.com"),
			ComarcaLotacao: str("CONTAGEM"),
		},
	}

	ids, err := membroRepo.CreateBatch(ctx, demo)
	if err != nil {
		return fmt.Errorf("cannot seed membros: %w", err)
	}

	// one insert per edge; the relation is then visible from both sides
	if err := membroRepo.AddFriend(ctx, ids[0], ids[1]); err != nil {
		return fmt.Errorf("cannot add friendship: %w", err)
	}
	if err := membroRepo.AddFriend(ctx, ids[0], ids[2]); err != nil {
		return fmt.Errorf("cannot add friendship: %w", err)
	}

	mylog.Info("seed finished", "membros", len(ids))
	return nil
}
