package schemas

import (
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"

	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
)

func sides(group string) []ot.SchemaNode {
	return []ot.SchemaNode{
		ot.Radio(group, "Contra"),
		ot.Radio(group, "Ipsi"),
	}
}

func surfaces(group string) ot.SchemaNode {
	return ot.Heading("Surface",
		ot.Radio(group, "Anterior"),
		ot.Radio(group, "Posterior"),
		ot.Radio(group, "Lateral"),
		ot.Radio(group, "Medial"),
		ot.Radio(group, "Top"),
		ot.Radio(group, "Bottom"),
	)
}

func sided(label, group string) ot.SchemaNode {
	return ot.Opt(label, append(sides(group), surfaces(group+".surface"))...)
}

// Location is the location module hierarchy.
func Location() ot.Schema {
	return ot.Schema{
		Name: LocationName,
		Roots: []ot.SchemaNode{
			ot.Opt("Head",
				ot.Opt("Back of head"),
				ot.Opt("Top of head"),
				sided("Side of face", "face.side"),
				ot.Opt("Face",
					ot.Opt("Forehead region",
						ot.Opt("Forehead"),
						sided("Temple", "temple"),
					),
					ot.Opt("Eye region",
						sided("Eyebrow", "eyebrow"),
						sided("Eye", "eye"),
						ot.Opt("Between eyebrows"),
					),
					ot.Opt("Nose",
						ot.Opt("Nose root"),
						ot.Opt("Nose ridge"),
						ot.Opt("Nose tip"),
						sided("Nostril", "nostril"),
					),
					sided("Cheek/nose", "cheek"),
					sided("Ear", "ear"),
					ot.Opt("Mouth",
						ot.Opt("Lips", ot.Opt("Upper lip"), ot.Opt("Lower lip")),
						ot.Opt("Teeth", ot.Opt("Upper teeth"), ot.Opt("Lower teeth")),
						ot.Opt("Tongue"),
						sided("Corner of mouth", "mouth.corner"),
					),
					ot.Opt("Chin"),
					ot.Opt("Under chin"),
				),
			),
			ot.Opt("Neck", sides("neck")...),
			ot.Opt("Torso",
				sided("Shoulder", "shoulder"),
				sided("Armpit", "armpit"),
				sided("Sternum/clavicle area", "sternum"),
				sided("Chest/breast area", "chest"),
				sided("Abdominal/waist area", "abdomen"),
				sided("Pelvis area", "pelvis"),
				sided("Hip", "hip"),
			),
			ot.Opt("Arm (contralateral)",
				ot.Opt("Upper arm", ot.Opt("Upper arm above biceps"), ot.Opt("Biceps")),
				ot.Opt("Elbow"),
				ot.Opt("Forearm"),
				ot.Opt("Wrist"),
			),
			ot.Opt("Legs and feet",
				sided("Upper leg", "leg.upper"),
				sided("Knee", "knee"),
				sided("Lower leg", "leg.lower"),
				sided("Ankle", "ankle"),
				sided("Foot", "foot"),
			),
			ot.Opt("Other hand",
				ot.Opt("Hand minus fingers",
					ot.Heading("Surface",
						ot.Opt("Back"),
						ot.Opt("Palm"),
						ot.Opt("Radial side"),
						ot.Opt("Ulnar side"),
						ot.Opt("Heel of hand"),
					),
				),
				ot.Opt("Thumb"),
				ot.Opt("Fingers",
					ot.Opt("Finger 1"),
					ot.Opt("Finger 2"),
					ot.Opt("Finger 3"),
					ot.Opt("Finger 4"),
					ot.Field("Finger notes", ot.EditText),
				),
				ot.Opt("Selected fingers and thumb"),
			),
			ot.Heading("Distance",
				ot.Opt("Horizontal", ot.Radio("dist.h", "Close"), ot.Radio("dist.h", "Medium"), ot.Radio("dist.h", "Far")),
				ot.Opt("Vertical", ot.Radio("dist.v", "Close"), ot.Radio("dist.v", "Medium"), ot.Radio("dist.v", "Far")),
				ot.Opt("Sagittal", ot.Radio("dist.s", "Close"), ot.Radio("dist.s", "Medium"), ot.Radio("dist.s", "Far")),
			),
		},
	}
}

// ForModuleType returns the built-in schema for module types that are coded
// in a tree.
func ForModuleType(t m.ModuleType) (ot.Schema, bool) {
	return ByName(string(t))
}

// ByName looks a built-in schema up by name.
func ByName(name string) (ot.Schema, bool) {
	switch name {
	case MovementName:
		return Movement(), true
	case LocationName:
		return Location(), true
	default:
		return ot.Schema{}, false
	}
}

// Names lists the built-in schemas.
func Names() []string {
	return []string{MovementName, LocationName}
}
