package idgen

import (
	"crm-app/types"
	"log"
	"reflect"
	"sync"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	nodeID   int64 = 1
)

// Init pins the node number. Must run before the first GenerateID to take effect.
func Init(id int64) {
	nodeID = id
	nodeOnce.Do(initNode)
}

func initNode() {
	var err error
	node, err = snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("Failed to init Snowflake: %v", err)
	}
}

func GenerateID() types.SnowflakeID {
	nodeOnce.Do(initNode)
	return types.SnowflakeID(node.Generate().Int64())
}

var snowflakeType = reflect.TypeOf(types.SnowflakeID(0))

// AutoGenerateSnowflakeID registers a create callback that fills a zero
// SnowflakeID primary key, for single rows and batches alike.
func AutoGenerateSnowflakeID(db *gorm.DB) error {
	return db.Callback().Create().Before("gorm:create").Register("idgen:snowflake_id", func(tx *gorm.DB) {
		if tx.Statement.Schema == nil {
			return
		}
		field := tx.Statement.Schema.PrioritizedPrimaryField
		if field == nil || field.FieldType != snowflakeType {
			return
		}

		ctx := tx.Statement.Context
		assign := func(rv reflect.Value) {
			if _, isZero := field.ValueOf(ctx, rv); isZero {
				if err := field.Set(ctx, rv, GenerateID()); err != nil {
					tx.AddError(err)
				}
			}
		}

		rv := tx.Statement.ReflectValue
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				assign(reflect.Indirect(rv.Index(i)))
			}
		case reflect.Struct:
			assign(rv)
		}
	})
}
