package ddb

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hashicorp/go-hclog"

	"github.com/buildvault/pybuild/pkg/ledger"
	"github.com/buildvault/pybuild/pkg/types"
)

// ddbLedger keeps the build ledger in a DynamoDB table keyed by
// package (hash key) and requirements_hash (range key).
type ddbLedger struct {
	c     *dynamodb.Client
	table string

	l hclog.Logger
}

func init() {
	ledger.RegisterCallback(newFactory)
}

func newFactory() {
	ledger.RegisterFactory("dynamodb", newDDBLedger)
}

func newDDBLedger(l hclog.Logger) (ledger.Ledger, error) {
	x := new(ddbLedger)
	x.l = l.Named("dynamodb")

	x.table = os.Getenv("PYBUILD_DDB_TABLE")
	if x.table == "" {
		l.Error("PYBUILD_DDB_TABLE must be set")
		return nil, errors.New("required variable unset")
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		l.Error("Error loading AWS configuration", "error", err)
		return nil, err
	}
	x.c = dynamodb.NewFromConfig(cfg)

	return x, nil
}

func (d *ddbLedger) Exists(ctx context.Context, pkg, hash string) (bool, error) {
	out, err := d.c.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(d.table),
		KeyConditionExpression: aws.String("#p = :p AND #h = :h"),
		ExpressionAttributeNames: map[string]string{
			"#p": "package",
			"#h": "requirements_hash",
		},
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":p": &ddbtypes.AttributeValueMemberS{Value: pkg},
			":h": &ddbtypes.AttributeValueMemberS{Value: hash},
		},
		Select: ddbtypes.SelectCount,
	})
	if err != nil {
		d.l.Error("Error querying ledger", "package", pkg, "hash", hash, "error", err)
		return false, err
	}
	return out.Count > 0, nil
}

func (d *ddbLedger) Record(ctx context.Context, rec types.LedgerRecord) error {
	// PutItem overwrites the item at the composite key, which
	// merges a racing duplicate insert idempotently.
	_, err := d.c.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item: map[string]ddbtypes.AttributeValue{
			"package":           &ddbtypes.AttributeValueMemberS{Value: rec.Package},
			"version":           &ddbtypes.AttributeValueMemberS{Value: rec.Version},
			"requirements":      &ddbtypes.AttributeValueMemberS{Value: rec.Requirements},
			"requirements_hash": &ddbtypes.AttributeValueMemberS{Value: rec.RequirementsHash},
			"created_date":      &ddbtypes.AttributeValueMemberS{Value: rec.CreatedDate},
		},
	})
	if err != nil {
		d.l.Error("Error writing ledger record", "package", rec.Package, "hash", rec.RequirementsHash, "error", err)
		return err
	}
	d.l.Info("Recorded build", "package", rec.Package, "version", rec.Version, "hash", rec.RequirementsHash)
	return nil
}

func (d *ddbLedger) Close() error {
	return nil
}
