// Package schemas holds the built-in option hierarchies that movement and
// location modules are coded in.
package schemas

import (
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"

	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
)

// Schema names.
const (
	MovementName = string(m.ModuleMovement)
	LocationName = string(m.ModuleLocation)
)

func axisDirections(group string) []ot.SchemaNode {
	return []ot.SchemaNode{
		ot.Opt("H1 and H2 move in same direction"),
		ot.Opt("H1 and H2 move in opposite directions"),
		ot.Radio(group+".h", "Horizontal", ot.Radio(group+".hd", "Ipsi"), ot.Radio(group+".hd", "Contra")),
		ot.Radio(group+".v", "Vertical", ot.Radio(group+".vd", "Up"), ot.Radio(group+".vd", "Down")),
		ot.Radio(group+".s", "Sagittal", ot.Radio(group+".sd", "Distal"), ot.Radio(group+".sd", "Proximal")),
		ot.Opt("Not relevant"),
	}
}

func planes(group string) []ot.SchemaNode {
	clockwise := func(g string) []ot.SchemaNode {
		return []ot.SchemaNode{
			ot.Radio(g, "Clockwise"),
			ot.Radio(g, "Counterclockwise"),
		}
	}

	return []ot.SchemaNode{
		ot.Opt("H1 and H2 move in same direction"),
		ot.Opt("H1 and H2 move in opposite directions"),
		ot.Opt("Horizontal", clockwise(group+".h")...),
		ot.Opt("Vertical", clockwise(group+".v")...),
		ot.Opt("Sagittal", clockwise(group+".s")...),
		ot.Opt("Not relevant"),
	}
}

func relativeCharacteristic(label, group string) ot.SchemaNode {
	return ot.Opt(label,
		ot.Opt("Relative to",
			ot.Radio(group+".rel", "Other movements in this sign"),
			ot.Radio(group+".rel", "Other signs"),
		),
		ot.Radio(group, "Higher"),
		ot.Radio(group, "Normal"),
		ot.Radio(group, "Lower"),
		ot.Radio(group, "Not relevant"),
	)
}

// Movement is the movement module hierarchy.
func Movement() ot.Schema {
	return ot.Schema{
		Name: MovementName,
		Roots: []ot.SchemaNode{
			ot.Heading("Movement type",
				ot.Radio("type", "Perceptual shape",
					ot.Heading("Shape",
						ot.Radio("shape", "Straight",
							ot.Radio("straight", "Interacting with subsequent straight movement",
								ot.Radio("straight.i", "Movement contours cross (e.g. X)"),
								ot.Radio("straight.i", "Subsequent movement starts at end of first (e.g. ↘↗)"),
								ot.Radio("straight.i", "Subsequent movement starts in same location as first (e.g. ↖↗)"),
								ot.Radio("straight.i", "Subsequent movement ends in same location as first (e.g. ↘↙)"),
							),
							ot.Radio("straight", "Not interacting with subsequent straight movement"),
						),
						ot.Radio("shape", "Arc"),
						ot.Radio("shape", "Circle"),
						ot.Radio("shape", "Zigzag"),
						ot.Radio("shape", "Loop (travelling circles)"),
						ot.Radio("shape", "None of these"),
					),
					ot.Heading("Axis direction", axisDirections("axis")...),
					ot.Heading("Plane", planes("plane")...),
				),
				ot.Radio("type", "Joint-specific movements",
					ot.Radio("joint", "Nodding/un-nodding", ot.Radio("joint.nod", "Nodding"), ot.Radio("joint.nod", "Un-nodding")),
					ot.Radio("joint", "Pivoting", ot.Radio("joint.piv", "Toward ulnar side"), ot.Radio("joint.piv", "Toward radial side")),
					ot.Radio("joint", "Twisting", ot.Radio("joint.tw", "Pronation"), ot.Radio("joint.tw", "Supination")),
					ot.Radio("joint", "Closing/opening", ot.Radio("joint.co", "Closing"), ot.Radio("joint.co", "Opening")),
					ot.Radio("joint", "Pinching/unpinching", ot.Radio("joint.pin", "Pinching (Morgan 2017)"), ot.Radio("joint.pin", "Unpinching")),
					ot.Radio("joint", "Flattening/straightening", ot.Radio("joint.fl", "Flattening/hinging"), ot.Radio("joint.fl", "Straightening")),
					ot.Radio("joint", "Hooking/unhooking", ot.Radio("joint.hk", "Hooking/clawing"), ot.Radio("joint.hk", "Unhooking")),
					ot.Radio("joint", "Spreading/unspreading", ot.Radio("joint.sp", "Spreading"), ot.Radio("joint.sp", "Unspreading")),
					ot.Radio("joint", "Rubbing", ot.Radio("joint.rub", "Thumb crosses over the palm"), ot.Radio("joint.rub", "Thumb moves away from the palm")),
					ot.Radio("joint", "Wiggling/fluttering"),
					ot.Radio("joint", "None of these"),
				),
				ot.Radio("type", "Handshape change"),
			),
			ot.Heading("Joint activity",
				ot.Opt("Complex / multi-joint"),
				ot.Opt("Shoulder", ot.Opt("Flexion"), ot.Opt("Extension"), ot.Opt("Abduction"), ot.Opt("Adduction"), ot.Opt("Rotation")),
				ot.Opt("Elbow", ot.Opt("Flexion"), ot.Opt("Extension"), ot.Opt("Supination"), ot.Opt("Pronation")),
				ot.Opt("Wrist", ot.Opt("Flexion"), ot.Opt("Extension"), ot.Opt("Radial deviation"), ot.Opt("Ulnar deviation")),
				ot.Opt("Thumb root / carpometacarpal (CMC)", ot.Opt("Flexion"), ot.Opt("Extension")),
				ot.Opt("Finger root / metacarpophalangeal (MCP)", ot.Opt("Flexion"), ot.Opt("Extension"), ot.Opt("Abduction"), ot.Opt("Adduction")),
				ot.Opt("Interphalangeal joints (IP)", ot.Opt("Flexion"), ot.Opt("Extension")),
			),
			ot.Heading("Movement characteristics",
				ot.Heading("Repetition",
					ot.Radio("rep", "Single"),
					ot.Radio("rep", "Repeated",
						ot.Field("Number of repetitions", ot.EditNumber),
						ot.Opt("Minimum"),
						ot.Heading("Location of repetition",
							ot.Radio("rep.loc", "Same location"),
							ot.Radio("rep.loc", "Different location",
								ot.Opt("Horizontal", ot.Radio("rep.loc.h", "Ipsi"), ot.Radio("rep.loc.h", "Contra")),
								ot.Opt("Vertical", ot.Radio("rep.loc.v", "Up"), ot.Radio("rep.loc.v", "Down")),
								ot.Opt("Sagittal", ot.Radio("rep.loc.s", "Distal"), ot.Radio("rep.loc.s", "Proximal")),
							),
						),
					),
				),
				ot.Heading("Trilled", ot.Radio("trill", "Trilled"), ot.Radio("trill", "Not trilled")),
				ot.Heading("Directionality", ot.Radio("dir", "Unidirectional"), ot.Radio("dir", "Bidirectional")),
				ot.Heading("Additional characteristics",
					relativeCharacteristic("Size", "size"),
					relativeCharacteristic("Speed", "speed"),
					relativeCharacteristic("Force", "force"),
					relativeCharacteristic("Tension", "tension"),
				),
				ot.Field("Number of cycles", ot.EditNumber),
			),
		},
	}
}
