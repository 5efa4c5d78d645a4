package rewrite

import (
	"fmt"

	"github.com/hyrax-data/hdf4view/internal/classify"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// applyStrategy dispatches to the product-specific rewrite logic of
// spec.md §4.3.1. Every SpecialProductType has its own case; a value
// outside the enumeration is reported as an error.
func applyStrategy(cat *inventory.Catalog, product classify.SpecialProductType, cfg Config) error {
	switch product {
	case classify.TRMM_L2_V6:
		return strategyTRMML2V6(cat)
	case classify.TRMM_L3B_V6:
		return strategyTRMML3BV6(cat)
	case classify.TRMM_L3A_V6:
		return strategyTRMML3AV6(cat)
	case classify.TRMM_L3C_V6:
		return strategyTRMML3CV6(cat)
	case classify.TRMM_L2_V7:
		return strategyTRMML2V7(cat, cfg)
	case classify.TRMM_L3S_V7:
		return strategyTRMML3SV7(cat, cfg)
	case classify.TRMM_L3M_V7:
		return strategyTRMML3MV7(cat)
	case classify.CER_AVG, classify.CER_SYN:
		return strategyCERAvgSyn(cat)
	case classify.CER_ES4, classify.CER_ISCCP_D2LIKE_GEO:
		return strategyCERRegional(cat)
	case classify.CER_ISCCP_D2LIKE_DAY, classify.CER_SRBAVG3:
		return strategyCERDaySRB(cat, product)
	case classify.CER_ZAVG:
		return strategyCERZavg(cat)
	case classify.OBPG_L2:
		return strategyOBPGL2(cat)
	case classify.OBPG_L3:
		return strategyOBPGL3(cat)
	case classify.MODIS_ARNSS:
		return strategyMODISArnss(cat)
	case classify.Other:
		return strategyOther(cat)
	default:
		return fmt.Errorf("unhandled product type %s", product)
	}
}
