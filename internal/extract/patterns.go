package extract

import "github.com/ppiankov/fnoltriage/internal/model"

// Pattern table field names. Besides the logical claim fields these include
// the party sub-patterns, which are tried per role.
const (
	patPolicyNumber     = "policy_number"
	patPolicyholderName = "policyholder_name"
	patEffectiveDate    = "policy_effective_date"
	patExpirationDate   = "policy_expiration_date"
	patInsurer          = "insurance_company"
	patIncidentDate     = "incident_date"
	patIncidentTime     = "incident_time"
	patIncidentLocation = "incident_location"
	patIncidentDesc     = "incident_description"
	patAssetType        = "asset_type"
	patAssetID          = "asset_id"
	patEstimatedDamage  = "estimated_damage"
	patClaimType        = "claim_type"
	patAttachments      = "attachments"

	patClaimant        = "party_claimant"
	patClaimantPhone   = "party_claimant_phone"
	patClaimantEmail   = "party_claimant_email"
	patClaimantAddress = "party_claimant_address"
	patThirdParty      = "party_third_party"
	patThirdPartyPhone = "party_third_party_phone"
	patWitness         = "party_witness"
	patWitnessPhone    = "party_witness_phone"
)

// defaultPatterns is the built-in pattern table. Per field the order is
// strict: ACORD label-then-newline forms first, inline "Label: value" forms
// next, looser catch-alls last. The first match anywhere in the normalized
// text wins.
var defaultPatterns = map[string][]string{
	patPolicyNumber: {
		`POLICY\s+NUMBER\s*\n\s*([A-Z0-9\-]{5,})`,
		`Policy\s*(?:Number|No\.?|#)\s*[:=]?\s*([A-Z0-9\-]+)`,
		`Policy\s+([A-Z0-9\-]{6,})`,
	},
	patPolicyholderName: {
		`Name\s+of\s+Policyholder\s*\n\s*([A-Za-z][A-Za-z\s.\-']+?)\n`,
		`Name\s+of\s+Insured\s*\n\s*([A-Za-z][A-Za-z\s.\-']+?)\n`,
		`(?:Policyholder\s+Name|Insured(?:'s)?\s+Name|Named\s+Insured)\s*[:=]?\s*([A-Za-z\s.\-']+?)\n`,
		`(?:Policyholder|Insured)\s*[:=]?\s*([A-Za-z\s.\-']+?)(?:\n|,|;|Address)`,
	},
	patEffectiveDate: {
		`Policy\s+Effective\s+Date\s*\n\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		`(?:Effective\s+Date|Policy\s+Effective)\s*[:=]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
	},
	patExpirationDate: {
		`Policy\s+Expiration\s+Date\s*\n\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		`(?:Expiration\s+Date|Policy\s+Expir(?:es|ation))\s*[:=]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
	},
	patInsurer: {
		`Insurance\s+Company\s*\n\s*([^\n]{2,60}?)\n`,
		`(?:Insurance\s+Company|Insurer|Carrier)\s*[:=]\s*([^\n]{2,60}?)\n`,
	},
	patIncidentDate: {
		`DATE\s+OF\s+LOSS[^\n]*\n\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|[A-Za-z]+\s+\d{1,2},\s+\d{4})`,
		`Date\s+of\s+Loss\s*\n\s*([A-Za-z]+\s+\d{1,2},\s+\d{4})`,
		`Date\s+of\s+(?:Loss|Occurrence|Accident)\s*[:=]?\s*([A-Za-z]+\s+\d{1,2},\s+\d{4})`,
		`Date\s+of\s+(?:Loss|Occurrence|Accident)\s*[:=]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
	},
	patIncidentTime: {
		`TIME\s+OF\s+LOSS[^\n]*\n\s*(\d{1,2}:\d{2}\s*(?:AM|PM)?)`,
		`Time\s+of\s+(?:Loss|Occurrence)\s*[:=]?\s*(\d{1,2}:\d{2}\s*(?:AM|PM))`,
		`Time\s*[:=]?\s*(\d{1,2}:\d{2}\s*(?:AM|PM))`,
	},
	patIncidentLocation: {
		`LOCATION\s+OF\s+LOSS[^\n]*STREET:\s*\n?\s*([^\n]{5,}?)(?:\n|CITY)`,
		`Location\s+of\s+(?:Loss|Accident)\s*[:=]?\s*([^\n]+?)\n`,
		`(?:Location|Place)\s*[:=]?\s*([^\n]{10,150}?)\n`,
	},
	patIncidentDesc: {
		`DESCRIPTION\s+OF\s+(?:LOSS|ACCIDENT|INCIDENT)\s*\n([^\n]+(?:\n[^\n]+)*?)(?:\n\n|\z)`,
		`Description\s+of\s+(?:Loss|Accident|Incident)\s*[:=]?\s*([^\n]{20,500}?)\n`,
		`(?:What\s+happened|Description)\s*[:=]?\s*([^\n]{20,}?)(?:\n|\z)`,
	},
	patAssetType: {
		`Year/Make/Model\s*\n\s*([^\n]+?)\n`,
		`MAKE\s*\n\s*([A-Za-z0-9\s\-]{2,50}?)\s*(?:\n|YEAR)`,
		`Type\s+of\s+(?:Property|Asset|Vehicle)\s*[:=]?\s*([A-Za-z\d\s]+?)(?:\n|;|,)`,
		`(?:Property|Asset)\s+Type\s*[:=]?\s*([A-Za-z\d\s\-]+?)(?:\n|\z)`,
	},
	patAssetID: {
		`Vehicle\s+Identification\s+Number\s+\(VIN\)\s*\n\s*([A-Z0-9]{10,})`,
		`(?:VIN|Asset\s+ID)\s*\n\s*([A-Z0-9\-]{6,})`,
		`(?:VIN|Asset\s+ID)\s*[:=]?\s*([A-Z0-9\-]{6,})`,
	},
	patEstimatedDamage: {
		`ESTIMATED\s+DAMAGE\s*\n\s*\$?\s*([\d,.]+)`,
		`Estimated\s+Damage\s+Amount\s*[:=]?\s*\$?\s*([\d,.]+)`,
		`(?:Estimated|Est\.)\s+(?:Damage|Loss)\s*[:=]?\s*\$?\s*([\d,.]+)`,
		`Damage\s+Estimate\s*[:=]?\s*\$?\s*([\d,.]+)`,
	},
	patClaimType: {
		`Type\s+of\s+Claim\s*[:=]?\s*([A-Za-z\s]+?)\n`,
		`Claim\s+Type\s*[:=]?\s*([A-Za-z\s\-]+?)(?:\n|\z)`,
	},
	patAttachments: {
		`ATTACHMENTS\s*\n\s*([^\n]{10,})`,
		`(?:Attachments?|Exhibits?)\s*[:=]?\s*([^\n]{10,}?)(?:\n|\z)`,
		`(?:Photos?|Images?|Documents?)\s+(?:attached|included)\s*[:=]?\s*([^\n]{10,}?)(?:\n|\z)`,
	},

	patClaimant: {
		`Claimant\s+Name\s*\n\s*([A-Za-z][A-Za-z\s.\-']{2,50}?)\n`,
		`(?:Claimant|Named\s+Insured)\s*[:=]\s*([A-Za-z\s.\-']+?)(?:\n|,)`,
	},
	patClaimantPhone: {
		`Contact\s+Phone\s*\n\s*([\d\-]{7,})`,
		`Contact\s+Phone\s*[:=]\s*([\d\-]{7,})`,
	},
	patClaimantEmail: {
		`Contact\s+Email\s*\n\s*(\S+@\S+)`,
		`Contact\s+Email\s*[:=]\s*(\S+@\S+)`,
	},
	patClaimantAddress: {
		`Claimant\s+Address\s*\n\s*([^\n]{5,100})`,
		`(?:Claimant\s+)?Address\s*[:=]\s*([^\n]{5,100}?)\n`,
	},
	patThirdParty: {
		`Third\s+Party\s+Driver\s+Name\s*\n\s*([A-Za-z][A-Za-z\s.\-']{2,50}?)\n`,
		`(?:Third\s+Party|Other\s+Driver)\s+Name\s*[:=]?\s*([A-Za-z\s.\-']+?)\n`,
	},
	patThirdPartyPhone: {
		`Third\s+Party\s+(?:Telephone|Phone)\s*\n\s*([\d\-]{7,})`,
		`Third\s+Party\s+(?:Telephone|Phone)\s*[:=]\s*([\d\-]{7,})`,
	},
	patWitness: {
		`Witness\s+Name\s*\n\s*([A-Za-z][A-Za-z\s.\-']{2,50}?)\n`,
		`Witness\s*[:=]\s*([A-Za-z\s.\-']+?)(?:\n|,)`,
	},
	patWitnessPhone: {
		`Witness\s+(?:Telephone|Phone)\s*\n\s*([\d\-]{7,})`,
		`Witness\s+(?:Telephone|Phone)\s*[:=]\s*([\d\-]{7,})`,
	},
}

// keywordGroup maps a claim type to its trigger keywords
type keywordGroup struct {
	claimType model.ClaimType
	keywords  []string
}

// defaultKeywordGroups is the closed keyword set used to derive claim_type
// when no labeled field is found. Groups are checked in this fixed priority
// order; the first group with any keyword present in the text wins.
var defaultKeywordGroups = []keywordGroup{
	{model.ClaimTypeBodilyInjury, []string{"bodily injury", "injury", "injured", "bodily"}},
	{model.ClaimTypeTheft, []string{"theft", "stolen", "burglary"}},
	{model.ClaimTypeCollision, []string{"collision", "collided", "rear-end"}},
	{model.ClaimTypeOther, []string{"comprehensive", "liability"}},
	{model.ClaimTypePropertyDamage, []string{"property damage", "property"}},
}
