package inventory

import (
	"fmt"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
)

// rawSDS is an SDS reference discovered during the vgroup walk, before the
// independent by-index SDS scan (sds.go) fills in its shape.
type rawSDS struct {
	ref  int32
	path string
}

// rawVdata is a Vdata reference discovered during the vgroup walk, paired
// with the path it was found under.
type rawVdata struct {
	ref  int32
	path string
}

// walkResult accumulates everything the depth-first vgroup traversal finds.
type walkResult struct {
	sds       []rawSDS
	vdata     []rawVdata
	vgroupSet []AttributeSet // one per visited vgroup that has attributes, name == its path
}

// walkVgroups performs spec.md §4.1 steps 1-3: enumerate lone vgroups
// (skipping the ignored bookkeeping classes), then depth-first walk each
// one's children, classifying every Vgroup/Vdata/SDS tag it meets.
func walkVgroups(h *hdf4.Handle) (walkResult, error) {
	var result walkResult

	lone, err := h.LoneVgroups()
	if err != nil {
		return result, fmt.Errorf("enumerate lone vgroups: %w", err)
	}

	for _, ref := range lone {
		info, children, err := h.VgroupAttach(ref)
		if err != nil {
			return result, fmt.Errorf("attach lone vgroup %d: %w", ref, err)
		}
		if ignoredVgroupClasses[info.Class] {
			continue
		}
		if err := visitVgroup(h, ref, info, children, "/"+info.Name, &result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// visitVgroup records the vgroup's own attributes under its path, then
// recurses into every child tag/ref pair.
func visitVgroup(h *hdf4.Handle, ref int32, info hdf4.VgroupInfo, children []hdf4.ObjTag, path string, result *walkResult) error {
	if info.NAttrs > 0 {
		attrs, err := h.VgroupAttributes(ref, info.NAttrs)
		if err != nil {
			return fmt.Errorf("read attributes of vgroup %q: %w", path, err)
		}
		result.vgroupSet = append(result.vgroupSet, AttributeSet{Name: path, Attrs: attrs})
	}

	for _, child := range children {
		switch {
		case child.IsVgroup():
			childInfo, grandchildren, err := h.VgroupAttach(child.Ref)
			if err != nil {
				return fmt.Errorf("attach vgroup %d under %q: %w", child.Ref, path, err)
			}
			childPath := path + "/" + childInfo.Name
			if err := visitVgroup(h, child.Ref, childInfo, grandchildren, childPath, result); err != nil {
				return err
			}

		case child.IsVdata():
			vinfo, err := h.VdataAttach(child.Ref)
			if err != nil {
				return fmt.Errorf("attach vdata %d under %q: %w", child.Ref, path, err)
			}
			if vinfo.IsAttr || excludedVdataClasses[vinfo.Class] || vinfo.Name == excludedVdataName {
				continue
			}
			result.vdata = append(result.vdata, rawVdata{ref: child.Ref, path: path})

		case child.IsSDS():
			result.sds = append(result.sds, rawSDS{ref: child.Ref, path: path})
		}
	}

	return nil
}
