package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoUseCase "github.com/allisson/whistleblower/internal/crypto/usecase"
	orgUseCase "github.com/allisson/whistleblower/internal/organization/usecase"
	customValidation "github.com/allisson/whistleblower/internal/validation"
)

// RunCreateOrganization onboards an organization with its first compliance admin and
// prints the recovery key. The key cannot be shown again.
func RunCreateOrganization(
	ctx context.Context,
	useCase orgUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	input orgUseCase.CreateOrganizationInput,
	format string,
) error {
	output, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	logger.Info("organization created",
		slog.String("organization_id", output.OrganizationID.String()),
		slog.String("slug", output.Slug),
	)

	if format == "json" {
		return json.NewEncoder(writer).Encode(map[string]string{
			"organization_id": output.OrganizationID.String(),
			"slug":            output.Slug,
			"recovery_key":    output.RecoveryKey,
		})
	}

	_, _ = fmt.Fprintf(writer, "Organization ID: %s\n", output.OrganizationID)
	_, _ = fmt.Fprintf(writer, "Slug: %s\n", output.Slug)
	_, _ = fmt.Fprintf(writer, "Recovery Key: %s\n", output.RecoveryKey)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "Store the recovery key offline. It will not be shown again.")
	return nil
}

// RunVerifyOrganizationKey checks a recovery key against the stored key hash of an
// organization. A mismatch is reported as an error.
func RunVerifyOrganizationKey(
	ctx context.Context,
	keys cryptoUseCase.OrganizationKeyUseCase,
	writer io.Writer,
	organizationID string,
	keyHex string,
) error {
	id, err := uuid.Parse(organizationID)
	if err != nil {
		return fmt.Errorf("invalid organization id: %w", err)
	}

	if err := validation.Validate(keyHex, validation.Required, customValidation.HexKey); err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}

	ok, err := keys.Verify(ctx, id, keyHex)
	if err != nil {
		return fmt.Errorf("failed to verify organization key: %w", err)
	}
	if !ok {
		return fmt.Errorf("key does not match organization %s", id)
	}

	_, _ = fmt.Fprintf(writer, "Key matches organization %s\n", id)
	return nil
}
