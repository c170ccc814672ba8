package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"medidocs/internal/service"
)

// AdminStatistics serves the basic corpus snapshot.
//
//	@Summary      Corpus statistics
//	@Tags         admin
//	@Produce      json
//	@Success      200 {object} stats.Snapshot
//	@Router       /api/admin/stats [get]
func AdminStatistics(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		snap, err := svc.Statistics(c.UserContext(), actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(snap)
	}
}

// AdminExtendedStatistics serves the full dashboard payload. The trend
// window is controlled by the months query parameter.
//
//	@Summary      Extended corpus statistics
//	@Tags         admin
//	@Produce      json
//	@Param        months query int false "trend window in months"
//	@Success      200 {object} stats.Extended
//	@Router       /api/admin/stats/extended [get]
func AdminExtendedStatistics(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}

		months := 0
		if raw := c.Query("months"); raw != "" {
			months, err = strconv.Atoi(raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid months")
			}
		}

		ext, err := svc.ExtendedStatistics(c.UserContext(), actor, months)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(ext)
	}
}

// AdminListPatients serves the patient roster with document counts.
//
//	@Summary      Patient roster
//	@Tags         admin
//	@Produce      json
//	@Success      200 {array} service.PatientSummary
//	@Router       /api/admin/patients [get]
func AdminListPatients(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		roster, err := svc.ListPatients(c.UserContext(), actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(roster)
	}
}

// AdminPatientDocuments returns one patient's documents.
//
//	@Summary      List a patient's documents
//	@Tags         admin
//	@Produce      json
//	@Param        id path string true "patient id"
//	@Success      200 {array} model.Document
//	@Router       /api/admin/patients/{id}/documents [get]
func AdminPatientDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		ownerID := c.Params("id")
		if _, err := uuid.Parse(ownerID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid id format")
		}
		docs, err := svc.ListByOwner(c.UserContext(), actor, ownerID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// AdminListDocuments returns every document in the catalog.
//
//	@Summary      List all documents
//	@Tags         admin
//	@Produce      json
//	@Success      200 {array} model.Document
//	@Router       /api/admin/documents [get]
func AdminListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		docs, err := svc.ListAll(c.UserContext(), actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}
