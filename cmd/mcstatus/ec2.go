package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog/log"
)

// instanceStateRunning is the EC2 state code of a running instance.
const instanceStateRunning = 16

var ErrInstanceNotRunning = errors.New("instance is not running")

type instanceDescriber interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

func newEC2Client(ctx context.Context, region string) (*ec2.Client, error) {
	awsCfg, err := loadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return ec2.NewFromConfig(awsCfg), nil
}

func newInstanceDescriber(ctx context.Context, region string) (instanceDescriber, error) {
	return newEC2Client(ctx, region)
}

// applyInstanceHost fills qc.Host from qc.InstanceID.
//
// A host given on the command line always wins. An explicit --instance-id
// replaces a host taken from the config file or MCSTATUS_HOST.
func applyInstanceHost(ctx context.Context, qc *QueryConfig, hostArg, instanceFlag bool, newAPI func(context.Context, string) (instanceDescriber, error)) error {
	if qc.InstanceID == "" {
		return nil
	}

	switch {
	case hostArg:
		log.Warn().Str("instance", qc.InstanceID).Str("host", qc.Host).Msg("host argument given, skipping instance lookup")
		return nil
	case qc.Host != "" && !instanceFlag:
		log.Warn().Str("instance", qc.InstanceID).Str("host", qc.Host).Msg("host already configured, skipping instance lookup")
		return nil
	}

	api, err := newAPI(ctx, qc.Region)
	if err != nil {
		return err
	}

	host, err := resolveInstanceHost(ctx, api, qc.InstanceID)
	if err != nil {
		return err
	}

	log.Info().Str("instance", qc.InstanceID).Str("host", host).Msg("resolved instance address")
	qc.Host = host
	return nil
}

func retrieveInstance(ctx context.Context, api instanceDescriber, id string) (*types.Instance, error) {
	output, err := api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return nil, err
	}

	if len(output.Reservations) == 0 || len(output.Reservations[0].Instances) == 0 {
		return nil, fmt.Errorf("instance %s not found", id)
	}

	return &output.Reservations[0].Instances[0], nil
}

// resolveInstanceHost returns the public DNS name (or IP) of a running instance.
func resolveInstanceHost(ctx context.Context, api instanceDescriber, id string) (string, error) {
	instance, err := retrieveInstance(ctx, api, id)
	if err != nil {
		return "", err
	}

	if instance.State == nil || aws.ToInt32(instance.State.Code)&0xff != instanceStateRunning {
		return "", fmt.Errorf("%w: %s", ErrInstanceNotRunning, id)
	}

	if host := aws.ToString(instance.PublicDnsName); host != "" {
		return host, nil
	}
	if host := aws.ToString(instance.PublicIpAddress); host != "" {
		return host, nil
	}

	return "", fmt.Errorf("instance %s has no public address", id)
}
