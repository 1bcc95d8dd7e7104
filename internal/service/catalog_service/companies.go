package catalog_service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

type nameInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// AddQuestionCompany links a company to a question. A nil result means the
// link already existed.
func (c *CatalogService) AddQuestionCompany(
	ctx context.Context,
	platformID int32,
	questionID string,
	companyID int32,
) (*database.QuestionCompany, error) {
	link, err := c.DB.LinkQuestionCompany(ctx, database.QuestionCompany{
		PlatformID: platformID,
		QuestionID: questionID,
		CompanyID:  companyID,
	})
	if err != nil {
		if track_errors.IsNoRows(err) {
			return nil, nil
		}
		return nil, track_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot link company %d to question %d/%s", companyID, platformID, questionID),
		)
	}
	log.WithFields(log.Fields{
		"platform_id": platformID,
		"question_id": questionID,
		"company_id":  companyID,
	}).Info("company linked")
	return &link, nil
}

// RemoveQuestionCompany returns the removed link, or nil if there was none.
func (c *CatalogService) RemoveQuestionCompany(
	ctx context.Context,
	platformID int32,
	questionID string,
	companyID int32,
) (*database.QuestionCompany, error) {
	link, err := c.DB.UnlinkQuestionCompany(ctx, database.QuestionCompany{
		PlatformID: platformID,
		QuestionID: questionID,
		CompanyID:  companyID,
	})
	if err != nil {
		if track_errors.IsNoRows(err) {
			return nil, nil
		}
		return nil, track_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot unlink company %d from question %d/%s", companyID, platformID, questionID),
		)
	}
	return &link, nil
}

// CreateCompany is a get-or-create by name.
func (c *CatalogService) CreateCompany(
	ctx context.Context,
	name string,
) (EntityResult[database.Company], error) {
	name = strings.TrimSpace(name)
	if err := service.ValidateInput(nameInput{Name: name}); err != nil {
		return EntityResult[database.Company]{}, err
	}

	company, err := getOrCreate(
		ctx, name,
		c.DB.GetCompanyByName,
		c.DB.CreateCompany,
	)
	if err != nil {
		return EntityResult[database.Company]{}, err
	}
	if !company.Exists {
		log.WithField("company", name).Info("company created")
	}
	return company, nil
}

// CreatePlatform is a get-or-create by name.
func (c *CatalogService) CreatePlatform(
	ctx context.Context,
	name string,
) (EntityResult[database.Platform], error) {
	name = strings.TrimSpace(name)
	if err := service.ValidateInput(nameInput{Name: name}); err != nil {
		return EntityResult[database.Platform]{}, err
	}

	platform, err := getOrCreate(
		ctx, name,
		c.DB.GetPlatformByName,
		c.DB.CreatePlatform,
	)
	if err != nil {
		return EntityResult[database.Platform]{}, err
	}
	if !platform.Exists {
		log.WithField("platform", name).Info("platform created")
	}
	return platform, nil
}

func getOrCreate[T any](
	ctx context.Context,
	name string,
	get func(context.Context, string) (T, error),
	create func(context.Context, string) (T, error),
) (EntityResult[T], error) {
	entity, err := get(ctx, name)
	if err == nil {
		return EntityResult[T]{Exists: true, Entity: entity}, nil
	}
	if !track_errors.IsNoRows(err) {
		return EntityResult[T]{}, track_errors.HandleDBErrors(
			err, errMsgs, fmt.Sprintf("cannot fetch %s", name),
		)
	}

	entity, err = create(ctx, name)
	if err == nil {
		return EntityResult[T]{Exists: false, Entity: entity}, nil
	}
	// lost a race with a concurrent create
	if track_errors.IsUniqueViolation(err, "") {
		if entity, err = get(ctx, name); err == nil {
			return EntityResult[T]{Exists: true, Entity: entity}, nil
		}
	}
	return EntityResult[T]{}, track_errors.HandleDBErrors(
		err, errMsgs, fmt.Sprintf("cannot create %s", name),
	)
}

func (c *CatalogService) GetAllCompanies(ctx context.Context) ([]database.Company, error) {
	companies, err := c.DB.ListCompanies(ctx)
	if err != nil {
		return nil, track_errors.HandleDBErrors(err, errMsgs, "cannot list companies")
	}
	return companies, nil
}

func (c *CatalogService) GetAllPlatforms(ctx context.Context) ([]database.Platform, error) {
	platforms, err := c.DB.ListPlatforms(ctx)
	if err != nil {
		return nil, track_errors.HandleDBErrors(err, errMsgs, "cannot list platforms")
	}
	return platforms, nil
}
