package app

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/allisson/pseudonymizer/internal/config"
	apperrors "github.com/allisson/pseudonymizer/internal/errors"
	pseudonymDomain "github.com/allisson/pseudonymizer/internal/pseudonym/domain"
	pseudonymHTTP "github.com/allisson/pseudonymizer/internal/pseudonym/http"
	pseudonymRepository "github.com/allisson/pseudonymizer/internal/pseudonym/repository"
	pseudonymService "github.com/allisson/pseudonymizer/internal/pseudonym/service"
	pseudonymUseCase "github.com/allisson/pseudonymizer/internal/pseudonym/usecase"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() pseudonymService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = pseudonymService.NewKMSService()
	})
	return c.kmsService
}

// KMSKeeper returns the keeper for KMS_KEY_URI, or nil when no URI is configured.
func (c *Container) KMSKeeper() (pseudonymDomain.KMSKeeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		c.kmsKeeper, err = c.initKMSKeeper()
		if err != nil {
			c.initErrors["kmsKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

// KeyStore returns the key store selected by KEY_STORE_DRIVER.
func (c *Container) KeyStore() (pseudonymUseCase.KeyStore, error) {
	var err error
	c.keyStoreInit.Do(func() {
		c.keyStore, err = c.initKeyStore()
		if err != nil {
			c.initErrors["keyStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyStore"]; exists {
		return nil, storedErr
	}
	return c.keyStore, nil
}

// DataSource returns the data source selected by DATA_SOURCE_DRIVER.
func (c *Container) DataSource() (pseudonymUseCase.DataSource, error) {
	var err error
	c.dataSourceInit.Do(func() {
		c.dataSource, err = c.initDataSource()
		if err != nil {
			c.initErrors["dataSource"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dataSource"]; exists {
		return nil, storedErr
	}
	return c.dataSource, nil
}

// FieldKeyRepository returns the field key repository based on the database driver.
func (c *Container) FieldKeyRepository() (pseudonymUseCase.FieldKeyRepository, error) {
	var err error
	c.fieldKeyRepositoryInit.Do(func() {
		c.fieldKeyRepository, err = c.initFieldKeyRepository()
		if err != nil {
			c.initErrors["fieldKeyRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldKeyRepository"]; exists {
		return nil, storedErr
	}
	return c.fieldKeyRepository, nil
}

// PseudonymUseCase returns the pseudonym use case.
func (c *Container) PseudonymUseCase() (pseudonymUseCase.PseudonymUseCase, error) {
	var err error
	c.pseudonymUseCaseInit.Do(func() {
		c.pseudonymUseCase, err = c.initPseudonymUseCase()
		if err != nil {
			c.initErrors["pseudonymUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pseudonymUseCase"]; exists {
		return nil, storedErr
	}
	return c.pseudonymUseCase, nil
}

// FieldKeyUseCase returns the field key use case.
func (c *Container) FieldKeyUseCase() (pseudonymUseCase.FieldKeyUseCase, error) {
	var err error
	c.fieldKeyUseCaseInit.Do(func() {
		c.fieldKeyUseCase, err = c.initFieldKeyUseCase()
		if err != nil {
			c.initErrors["fieldKeyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldKeyUseCase"]; exists {
		return nil, storedErr
	}
	return c.fieldKeyUseCase, nil
}

// PseudonymHandler returns the pseudonym HTTP handler.
func (c *Container) PseudonymHandler() (*pseudonymHTTP.PseudonymHandler, error) {
	var err error
	c.pseudonymHandlerInit.Do(func() {
		c.pseudonymHandler, err = c.initPseudonymHandler()
		if err != nil {
			c.initErrors["pseudonymHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pseudonymHandler"]; exists {
		return nil, storedErr
	}
	return c.pseudonymHandler, nil
}

// initKMSKeeper opens the keeper for KMS_KEY_URI.
func (c *Container) initKMSKeeper() (pseudonymDomain.KMSKeeper, error) {
	if c.config.KMSKeyURI == "" {
		return nil, nil
	}

	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper: %w", err)
	}
	return keeper, nil
}

// initKeyStore builds the key store for the configured driver.
func (c *Container) initKeyStore() (pseudonymUseCase.KeyStore, error) {
	switch c.config.KeyStoreDriver {
	case config.KeyStoreMemory:
		c.Logger().Warn("using the demo key store; it must never protect real data")
		return pseudonymRepository.NewDemoKeyStore(), nil

	case config.KeyStoreEnv:
		keeper, err := c.KMSKeeper()
		if err != nil {
			return nil, fmt.Errorf("failed to get kms keeper for env key store: %w", err)
		}
		store, err := pseudonymRepository.LoadEnvKeyStore(context.Background(), c.config.FieldKeys, keeper)
		if err != nil {
			return nil, fmt.Errorf("failed to load env key store: %w", err)
		}
		return store, nil

	case config.KeyStoreDerived:
		root, err := base64.StdEncoding.DecodeString(c.config.RootSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to decode root secret: %w", pseudonymDomain.ErrInvalidKey)
		}
		defer pseudonymDomain.Zero(root)

		store, err := pseudonymRepository.NewDerivedKeyStore(root, c.config.DerivedFields)
		if err != nil {
			return nil, fmt.Errorf("failed to create derived key store: %w", err)
		}
		return store, nil

	case config.KeyStoreDatabase:
		repo, err := c.FieldKeyRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get field key repository for key store: %w", err)
		}
		keeper, err := c.KMSKeeper()
		if err != nil {
			return nil, fmt.Errorf("failed to get kms keeper for key store: %w", err)
		}
		if keeper == nil {
			return nil, apperrors.Wrap(apperrors.ErrPrecondition, "database key store requires KMS_KEY_URI")
		}
		return pseudonymRepository.NewDatabaseKeyStore(repo, keeper), nil

	default:
		return nil, fmt.Errorf("unsupported key store driver: %s", c.config.KeyStoreDriver)
	}
}

// initDataSource builds the data source for the configured driver.
func (c *Container) initDataSource() (pseudonymUseCase.DataSource, error) {
	switch c.config.DataSourceDriver {
	case config.DataSourceMemory:
		return pseudonymRepository.NewDemoDataSource(), nil

	case config.DataSourceDatabase:
		sources, err := pseudonymRepository.ParseFieldSources(c.config.FieldSources)
		if err != nil {
			return nil, fmt.Errorf("failed to parse field sources: %w", err)
		}
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for data source: %w", err)
		}
		ds, err := pseudonymRepository.NewSQLDataSource(db, c.config.DBDriver, sources)
		if err != nil {
			return nil, fmt.Errorf("failed to create sql data source: %w", err)
		}
		return ds, nil

	default:
		return nil, fmt.Errorf("unsupported data source driver: %s", c.config.DataSourceDriver)
	}
}

// initFieldKeyRepository creates the field key repository based on the database driver.
func (c *Container) initFieldKeyRepository() (pseudonymUseCase.FieldKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for field key repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return pseudonymRepository.NewPostgreSQLFieldKeyRepository(db), nil
	case "mysql":
		return pseudonymRepository.NewMySQLFieldKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPseudonymUseCase creates the pseudonym use case with all its dependencies.
func (c *Container) initPseudonymUseCase() (pseudonymUseCase.PseudonymUseCase, error) {
	keyStore, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for pseudonym use case: %w", err)
	}

	dataSource, err := c.DataSource()
	if err != nil {
		return nil, fmt.Errorf("failed to get data source for pseudonym use case: %w", err)
	}

	baseUseCase := pseudonymUseCase.NewPseudonymUseCase(keyStore, dataSource, pseudonymUseCase.Options{
		TruncateLength: c.config.PseudonymTruncateBytes,
		Encoding:       pseudonymDomain.Encoding(c.config.PseudonymEncoding),
		Concurrency:    c.config.BatchConcurrency,
	})

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for pseudonym use case: %w", err)
		}
		return pseudonymUseCase.NewPseudonymUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initFieldKeyUseCase creates the field key use case with all its dependencies.
func (c *Container) initFieldKeyUseCase() (pseudonymUseCase.FieldKeyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for field key use case: %w", err)
	}

	repo, err := c.FieldKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get field key repository for field key use case: %w", err)
	}

	keeper, err := c.KMSKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for field key use case: %w", err)
	}
	if keeper == nil {
		return nil, apperrors.Wrap(apperrors.ErrPrecondition, "field key management requires KMS_KEY_URI")
	}

	baseUseCase := pseudonymUseCase.NewFieldKeyUseCase(txManager, repo, keeper)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for field key use case: %w", err)
		}
		return pseudonymUseCase.NewFieldKeyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initPseudonymHandler creates the pseudonym HTTP handler.
func (c *Container) initPseudonymHandler() (*pseudonymHTTP.PseudonymHandler, error) {
	useCase, err := c.PseudonymUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get pseudonym use case for pseudonym handler: %w", err)
	}

	return pseudonymHTTP.NewPseudonymHandler(useCase, c.config.MaxBatchSize, c.Logger()), nil
}
