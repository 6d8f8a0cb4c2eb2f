package service

import (
	"context"
	"fmt"

	"citypulse/backend/internal/repository"
	"citypulse/backend/pkg/logger"
)

// seedComments are the example submissions loaded into an empty database so
// the dashboard has something to show on first run.
var seedComments = []string{
	"El transporte público es muy lento en horas punta",
	"Los buses nuevos han mejorado bastante el servicio",
	"Siempre hay mucha demora y desorden en los paraderos",
	"Me gusta que ahora las unidades estén más limpias",
	"El pasaje es caro para la calidad del servicio",
	"Los conductores manejan de forma irresponsable",
	"El sistema de transporte debería ser más puntual",
	"Buen servicio en algunas rutas, pero malo en otras",
	"El transporte público ha mejorado en los últimos meses",
	"Falta seguridad en los paraderos durante la noche",
	"Los horarios no se respetan y eso genera molestias",
	"El servicio es aceptable, aunque puede mejorar",
	"Muy mala experiencia usando el transporte público",
	"El viaje fue cómodo y rápido",
	"La atención al usuario es deficiente",
}

// SeedExampleComments submits the bundled example comments when the store is
// empty. Seeds run through the normal submission pipeline, so they pick up
// whatever translation setup exists at the time.
func SeedExampleComments(ctx context.Context, comments repository.CommentRepository, submitter CommentService) (int, error) {
	count, err := comments.Count(ctx, repository.CommentListFilter{})
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, text := range seedComments {
		if _, err := submitter.Submit(ctx, SubmitCommentInput{Name: "Ejemplo", Text: text}); err != nil {
			logger.Warn("seed comment failed", "module", "service", "action", "create", "resource", "comment", "result", "failed", "error", err)
			continue
		}
		created++
	}
	if created > 0 {
		logger.Info("seeded example comments", "module", "service", "action", "create", "resource", "comment", "result", "ok", "count", created)
	}
	return created, nil
}
