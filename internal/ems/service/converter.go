package service

import (
	"time"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// copyOption model -> entity 转换时使用的类型转换
// 时间统一格式化为 RFC3339，JSON 列转换为普通 map，定点数转换为 float64
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				t, _ := src.(time.Time)
				return formatTime(t), nil
			},
		},
		{
			SrcType: &time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				t, _ := src.(*time.Time)
				if t == nil {
					return "", nil
				}
				return formatTime(*t), nil
			},
		},
		{
			SrcType: datatypes.JSONMap{},
			DstType: map[string]any{},
			Fn: func(src any) (any, error) {
				m, _ := src.(datatypes.JSONMap)
				if m == nil {
					return map[string]any(nil), nil
				}
				return map[string]any(m), nil
			},
		},
		{
			SrcType: decimal.Decimal{},
			DstType: float64(0),
			Fn: func(src any) (any, error) {
				d, _ := src.(decimal.Decimal)
				return d.InexactFloat64(), nil
			},
		},
	},
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTime 接受 RFC3339 或 2006-01-02
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

func tagModelToEntity(m *model.Tag) (*entity.Tag, error) {
	e := &entity.Tag{}
	if err := copier.CopyWithOption(e, m, copyOption); err != nil {
		return nil, err
	}
	return e, nil
}

func taggableModelToEntity(m *model.Taggable) (*entity.Taggable, error) {
	e := &entity.Taggable{}
	if err := copier.CopyWithOption(e, m, copyOption); err != nil {
		return nil, err
	}
	return e, nil
}

func organizationModelToEntity(m *model.Organization) (*entity.Organization, error) {
	e := &entity.Organization{}
	if err := copier.CopyWithOption(e, m, copyOption); err != nil {
		return nil, err
	}
	return e, nil
}

func userModelToEntity(m *model.User) (*entity.User, error) {
	e := &entity.User{}
	if err := copier.CopyWithOption(e, m, copyOption); err != nil {
		return nil, err
	}
	e.DisplayName = entity.DisplayNameOf(m.Name, m.Email)
	return e, nil
}

func customerProfileModelToEntity(m *model.CustomerProfile) (*entity.CustomerProfile, error) {
	e := &entity.CustomerProfile{}
	if err := copier.CopyWithOption(e, m, copyOption); err != nil {
		return nil, err
	}
	return e, nil
}

// energyContractModelToEntity 转换合同，Active 按 at 时刻计算
func energyContractModelToEntity(m *model.EnergyContract, at time.Time) (*entity.EnergyContract, error) {
	e := &entity.EnergyContract{}
	if err := copier.CopyWithOption(e, m, copyOption); err != nil {
		return nil, err
	}
	e.Active = m.IsActive(at)
	return e, nil
}

func faqModelToEntity(m *model.Faq) (*entity.Faq, error) {
	e := &entity.Faq{}
	if err := copier.CopyWithOption(e, m, copyOption); err != nil {
		return nil, err
	}
	e.HelpfulRate = m.HelpfulRate()
	return e, nil
}

func carbonCreditModelToEntity(m *model.CarbonCredit) (*entity.CarbonCredit, error) {
	e := &entity.CarbonCredit{}
	if err := copier.CopyWithOption(e, m, copyOption); err != nil {
		return nil, err
	}
	return e, nil
}
